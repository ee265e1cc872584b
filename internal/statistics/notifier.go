package statistics

import (
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const notifierSubsystem = "notifier"

type NotifierCollector struct {
	notifier *controller.Notifier

	published   *prometheus.Desc
	dropped     *prometheus.Desc
	subscribers *prometheus.Desc
}

func NewNotifierCollector(notifier *controller.Notifier) *NotifierCollector {
	return &NotifierCollector{
		notifier: notifier,
		published: prometheus.NewDesc(prometheus.BuildFQName(namespace, notifierSubsystem, "published"),
			"Number of published change notifications",
			[]string{"signal"}, nil,
		),
		dropped: prometheus.NewDesc(prometheus.BuildFQName(namespace, notifierSubsystem, "dropped"),
			"Number of notifications dropped for subscribers that did not keep up",
			[]string{}, nil,
		),
		subscribers: prometheus.NewDesc(prometheus.BuildFQName(namespace, notifierSubsystem, "subscribers"),
			"Number of current event stream subscribers",
			[]string{}, nil,
		),
	}
}

func (collector *NotifierCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.published
	ch <- collector.dropped
	ch <- collector.subscribers
}

func (collector *NotifierCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.notifier.Stats()
	for signal, count := range stats.Published {
		ch <- prometheus.MustNewConstMetric(collector.published, prometheus.CounterValue, float64(count), string(signal))
	}
	ch <- prometheus.MustNewConstMetric(collector.dropped, prometheus.CounterValue, float64(stats.Dropped))
	ch <- prometheus.MustNewConstMetric(collector.subscribers, prometheus.GaugeValue, float64(stats.Subscribers))
}
