package main

import (
	_ "net/http/pprof" // 注册 pprof 接口
	"os"

	"sqlpreview/cmd/convert"
	"sqlpreview/cmd/cron"
	"sqlpreview/cmd/http"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
)

func main() {
	root := cobra.Command{
		Use:   "sqlpreview",
		Short: "Preview rows affected by UPDATE/DELETE statements",
	}

	root.AddCommand(
		convert.Cmd,
		cron.Cmd,
		http.Cmd,
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
