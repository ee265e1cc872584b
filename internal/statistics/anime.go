package statistics

import (
	"github.com/markusressel/asus2go/internal/anime"
	"github.com/prometheus/client_golang/prometheus"
)

const animeSubsystem = "anime"

type AnimeSource interface {
	Status() anime.Status
	Stats() anime.Stats
}

type AnimeCollector struct {
	engine AnimeSource

	framesWritten   *prometheus.Desc
	writeErrors     *prometheus.Desc
	maxWriteLatency *prometheus.Desc
	avgWriteLatency *prometheus.Desc
	playing         *prometheus.Desc
}

func NewAnimeCollector(engine AnimeSource) *AnimeCollector {
	return &AnimeCollector{
		engine: engine,
		framesWritten: prometheus.NewDesc(prometheus.BuildFQName(namespace, animeSubsystem, "frames_written"),
			"Number of frames written to the AniMe matrix",
			[]string{}, nil,
		),
		writeErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, animeSubsystem, "write_errors"),
			"Number of frames that could not be written to the AniMe matrix",
			[]string{}, nil,
		),
		maxWriteLatency: prometheus.NewDesc(prometheus.BuildFQName(namespace, animeSubsystem, "max_write_latency_ms"),
			"Highest frame write latency of the recent frames in milliseconds",
			[]string{}, nil,
		),
		avgWriteLatency: prometheus.NewDesc(prometheus.BuildFQName(namespace, animeSubsystem, "avg_write_latency_ms"),
			"Average frame write latency of the recent frames in milliseconds",
			[]string{}, nil,
		),
		playing: prometheus.NewDesc(prometheus.BuildFQName(namespace, animeSubsystem, "playing"),
			"Whether the animation list of the event is currently playing",
			[]string{"event"}, nil,
		),
	}
}

func (collector *AnimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.framesWritten
	ch <- collector.writeErrors
	ch <- collector.maxWriteLatency
	ch <- collector.avgWriteLatency
	ch <- collector.playing
}

// Collect implements required collect function for all prometheus collectors
func (collector *AnimeCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.engine.Stats()
	ch <- prometheus.MustNewConstMetric(collector.framesWritten, prometheus.CounterValue, float64(stats.FramesWritten))
	ch <- prometheus.MustNewConstMetric(collector.writeErrors, prometheus.CounterValue, float64(stats.WriteErrors))
	ch <- prometheus.MustNewConstMetric(collector.maxWriteLatency, prometheus.GaugeValue, stats.MaxWriteLatency)
	ch <- prometheus.MustNewConstMetric(collector.avgWriteLatency, prometheus.GaugeValue, stats.AvgWriteLatency)

	status := collector.engine.Status()
	for _, event := range []anime.Event{anime.EventSystem, anime.EventBoot, anime.EventWake, anime.EventShutdown} {
		playing := status.State != anime.StateIdle && status.Event == event
		ch <- prometheus.MustNewConstMetric(collector.playing, prometheus.GaugeValue, boolToFloat(playing), event.String())
	}
}
