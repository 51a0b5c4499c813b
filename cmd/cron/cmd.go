package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"sort"
	"sync"
	"syscall"
	"time"

	"sqlpreview/pkg"
	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/errors"
	"sqlpreview/pkg/log"
	"sqlpreview/pkg/metrics"
	"sqlpreview/pkg/trace"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	crond "github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

type jobInfo struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
	job  func(ctx context.Context) error
}

func (j *jobInfo) Run() {
	j.job(context.Background())
}

var c = crond.New()

var jobs = map[string]*jobInfo{}

var port int

func init() {
	Cmd.Flags().IntVar(&port, "port", 8080, "metrics listen port")
}

// Cmd run job once or periodically
var Cmd = &cobra.Command{
	Use:   "cron",
	Short: "Run cron job",
	Long: `You can list all jobs and run certain one once.
If you run job cmd WITHOUT any sub cmd, job will be sheduled like cron.`,
	Run: func(cmd *cobra.Command, args []string) {
		defer pkg.Stop()

		mux := http.NewServeMux()
		initMux(mux)
		server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				panic(err)
			}
		}()

		go func() {
			conf.OnConfigChange(func() { pkg.Reset() })
			conf.WatchConfig()

			c.Run()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
		<-stop

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()

			// 等待正在执行的任务结束
			<-c.Stop().Done()
		}()
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Get(ctx).Errorf("cron server shutdown error: %v", err)
			}
		}()
		wg.Wait()
	},
}

func initMux(mux *http.ServeMux) {
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/ListTasks", func(w http.ResponseWriter, r *http.Request) {
		span, ctx := opentracing.StartSpanFromContext(r.Context(), "ListTasks")
		defer span.Finish()

		w.Header().Set("x-trace-id", trace.GetTraceID(ctx))
		w.Header().Set("content-type", "application/json")

		buf, err := json.Marshal(sortedJobs())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(err.Error()))
			return
		}

		w.Write(buf)
	})

	mux.HandleFunc("/RunTask", func(w http.ResponseWriter, r *http.Request) {
		span, ctx := opentracing.StartSpanFromContext(r.Context(), "RunTask")
		defer span.Finish()

		w.Header().Set("x-trace-id", trace.GetTraceID(ctx))

		name := r.FormValue("name")
		job, ok := jobs[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("job " + name + " not found\n"))
			return
		}

		if err := job.job(ctx); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(fmt.Sprintf("%+v", err)))
			return
		}

		w.Write([]byte("run job " + name + " done\n"))
	})

	mux.HandleFunc("/monitor/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
}

func sortedJobs() []*jobInfo {
	list := make([]*jobInfo, 0, len(jobs))
	for _, j := range jobs {
		list = append(list, j)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "List all cron jobs",
	Long:  `List all cron jobs.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, j := range sortedJobs() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", j.Name, j.Spec)
		}
	},
}

// once 命令参数，可以在 cron 中使用
// sqlpreview cron once foo bar 则 onceArgs = []string{"bar"}
// sqlpreview cron once foo 1 2 3 则 onceArgs = []string{"1", "2", "3"}
var onceArgs []string

var cmdOnce = &cobra.Command{
	Use:          "once job",
	Short:        "Run job once",
	Long:         `Run job once.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer pkg.Stop()

		name := args[0]
		onceArgs = args[1:]
		job, ok := jobs[name]
		if !ok {
			return errors.Errorf("job %s not found", name)
		}
		return job.job(context.Background())
	},
}

func init() {
	Cmd.AddCommand(
		cmdList,
		cmdOnce,
	)
}

// spec 参数请参考 https://pkg.go.dev/github.com/robfig/cron/v3
func cron(name string, spec string, job func(ctx context.Context) error) {
	if _, ok := jobs[name]; ok {
		panic(name + " is used")
	}

	j := regjob(name, spec, job)
	jobs[name] = j

	if spec == "@manual" {
		return
	}

	if _, err := c.AddJob(spec, j); err != nil {
		panic(err)
	}
}

func manual(name string, job func(ctx context.Context) error) {
	cron(name, "@manual", job)
}

func regjob(name string, spec string, job func(ctx context.Context) error) *jobInfo {
	j := func(ctx context.Context) (err error) {
		span, ctx := opentracing.StartSpanFromContext(ctx, "Cron")
		defer span.Finish()

		span.SetTag("name", name)

		logger := log.Get(ctx)

		code := "ok"
		defer func() {
			if r := recover(); r != nil {
				code = "panic"
				err = errors.Errorf("%+v stack: %s", r, string(debug.Stack()))
				logger.Error(err)
			}
			metrics.JobTotal.WithLabelValues(name, code).Inc()
		}()

		if conf.GetBool("JOB_PAUSE") {
			code = "skip"
			logger.Errorf("skip cron job %s[%s]", name, spec)
			return
		}

		t := time.Now()
		if err = job(ctx); err != nil {
			code = "error"
			logger.Errorf("cron job error: %+v", err)
		}
		d := time.Since(t)

		logger.WithField("cost", d.Seconds()).Infof("cron job %s[%s]", name, spec)
		return
	}

	return &jobInfo{Name: name, Spec: spec, job: j}
}
