// Package log 基础日志组件
package log

import (
	"context"
	"os"

	"sqlpreview/pkg/conf"
	"sqlpreview/pkg/ctxkit"

	"github.com/k0kubun/pp/v3"
	isatty "github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var printer = pp.New()

func init() {
	setLevel()
	initPP()
}

func initPP() {
	out := os.Stdout
	printer.SetOutput(out)

	if !isatty.IsTerminal(out.Fd()) {
		printer.SetColoringEnabled(false)
	}
}

// Logger logger
type Logger = *logrus.Entry

// Fields fields
type Fields = logrus.Fields

var levels = map[string]logrus.Level{
	"panic": logrus.PanicLevel,
	"fatal": logrus.FatalLevel,
	"error": logrus.ErrorLevel,
	"warn":  logrus.WarnLevel,
	"info":  logrus.InfoLevel,
	"debug": logrus.DebugLevel,
	"trace": logrus.TraceLevel,
}

func setLevel() {
	levelConf := conf.Get("LOG_LEVEL_" + conf.Hostname)

	if levelConf == "" {
		levelConf = conf.Get("LOG_LEVEL")
	}

	if level, ok := levels[levelConf]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Get 获取日志实例
func Get(ctx context.Context) Logger {
	return logrus.WithFields(logrus.Fields{
		"env":         conf.Env,
		"app_id":      conf.AppID,
		"instance_id": conf.Hostname,
		"ip":          ctxkit.GetUserIP(ctx),
		"trace_id":    ctxkit.GetTraceID(ctx),
	})
}

// Reset 使用最新配置重置日志级别
func Reset() {
	setLevel()
}

// PP 类似 PHP 的 var_dump
func PP(args ...interface{}) {
	printer.Println(args...)
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	Get(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	Get(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	Get(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	Get(ctx).Errorf(format, args...)
}
