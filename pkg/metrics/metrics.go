package metrics

import (
	"sqlpreview/pkg/conf"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ConvertTotal 语句转换数量统计
	ConvertTotal *prometheus.CounterVec
	// HistoryTotal 写入转换历史数量统计
	HistoryTotal *prometheus.CounterVec
	// JobTotal 定时任务数量统计
	JobTotal *prometheus.CounterVec
)

func init() {
	ConvertTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "sqlpreview",
		Name:        "convert_total",
		Help:        "convert total",
		ConstLabels: map[string]string{"app": conf.AppID},
	}, []string{"statement", "status"})
	prometheus.MustRegister(ConvertTotal)

	HistoryTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "sqlpreview",
		Name:        "history_total",
		Help:        "history total",
		ConstLabels: map[string]string{"app": conf.AppID},
	}, []string{"code"})
	prometheus.MustRegister(HistoryTotal)

	JobTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "sqlpreview",
		Name:        "job_total",
		Help:        "job total",
		ConstLabels: map[string]string{"app": conf.AppID},
	}, []string{"name", "code"})
	prometheus.MustRegister(JobTotal)
}
