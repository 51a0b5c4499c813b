package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sqlpreview/cmd/http/hooks"
	"sqlpreview/pkg"
	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/log"
	"sqlpreview/pkg/memdb"
	"sqlpreview/pkg/twirp"
	preview_v1 "sqlpreview/rpc/preview/v1"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var commonHooks = twirp.ChainHooks(hooks.TraceID, hooks.Log)

func initMux(mux *http.ServeMux) {
	{
		server := &preview_v1.ConverterServer{History: memdb.GetHistory()}
		handler := preview_v1.NewConverterServer(server, commonHooks)
		mux.Handle(preview_v1.ConverterPathPrefix, handler)
	}

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/monitor/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
}

func main() {
	defer pkg.Stop()

	mux := http.NewServeMux()
	initMux(mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	ctx := context.Background()

	go func() {
		log.Get(ctx).Infof("http server listen on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	conf.OnConfigChange(func() { pkg.Reset() })
	conf.WatchConfig()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Get(ctx).Errorf("http server shutdown error: %v", err)
	}
}
