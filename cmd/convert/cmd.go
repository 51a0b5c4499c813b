// Package convert 命令行转换工具
package convert

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"sqlpreview/pkg/errors"
	"sqlpreview/pkg/log"
	preview_v1 "sqlpreview/rpc/preview/v1"

	"github.com/spf13/cobra"
)

var (
	remote   string
	pretty   bool
	examples bool
)

// Cmd convert sql from args or stdin
var Cmd = &cobra.Command{
	Use:   "convert [sql...]",
	Short: "Convert UPDATE/DELETE to SELECT",
	Long: `Convert an UPDATE or DELETE statement into the SELECT that previews
the affected rows. The statement is read from args, or from stdin when no
args are given.

  sqlpreview convert "DELETE FROM orders WHERE status='cancelled'"
  echo "UPDATE users SET a=1 WHERE id=2" | sqlpreview convert
  sqlpreview convert --remote http://127.0.0.1:8080 "DELETE FROM t WHERE id=1"`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c := newConverter()
		out := cmd.OutOrStdout()

		if examples {
			return listExamples(ctx, c, out)
		}

		sql := strings.Join(args, " ")
		if len(args) == 0 {
			buf, err := ioutil.ReadAll(cmd.InOrStdin())
			if err != nil {
				return errors.Wrap(err, "read stdin")
			}
			sql = string(buf)
		}

		return convert(ctx, c, out, sql)
	},
}

func init() {
	Cmd.Flags().StringVar(&remote, "remote", "", "convert with remote server, e.g. http://127.0.0.1:8080")
	Cmd.Flags().BoolVar(&pretty, "pretty", false, "print the whole result")
	Cmd.Flags().BoolVar(&examples, "examples", false, "print built-in examples")
}

func newConverter() preview_v1.Converter {
	if remote != "" {
		return preview_v1.NewConverterJSONClient(remote, http.DefaultClient)
	}
	return &preview_v1.ConverterServer{}
}

func convert(ctx context.Context, c preview_v1.Converter, out io.Writer, sql string) error {
	resp, err := c.Convert(ctx, &preview_v1.ConvertReq{SQL: sql})
	if err != nil {
		return err
	}

	if pretty {
		log.PP(resp)
	} else {
		fmt.Fprintln(out, resp.Text)
	}

	if resp.Status == "error" {
		return errors.Errorf("convert failed with code %d", resp.Code)
	}
	return nil
}

func listExamples(ctx context.Context, c preview_v1.Converter, out io.Writer) error {
	resp, err := c.ListExamples(ctx, &preview_v1.ListExamplesReq{})
	if err != nil {
		return err
	}

	for i, e := range resp.Examples {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "-- %s\n%s\n=> %s\n", e.Title, e.SQL, e.Result.Text)
	}
	return nil
}
