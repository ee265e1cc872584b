package statistics

import (
	"strings"
	"testing"

	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeAnime struct {
	status anime.Status
	stats  anime.Stats
}

func (f fakeAnime) Status() anime.Status {
	return f.status
}

func (f fakeAnime) Stats() anime.Stats {
	return f.stats
}

type fakeCharge struct {
	limit uint8
}

func (f *fakeCharge) ChargeLimit() (uint8, error) {
	return f.limit, nil
}

func (f *fakeCharge) SetChargeLimit(limit uint8) error {
	f.limit = limit
	return nil
}

func TestAnimeCollector(t *testing.T) {
	// GIVEN
	collector := NewAnimeCollector(fakeAnime{
		status: anime.Status{State: anime.StatePlaying, Event: anime.EventBoot},
		stats:  anime.Stats{FramesWritten: 42, WriteErrors: 1, MaxWriteLatency: 2.5, AvgWriteLatency: 1.5},
	})

	// WHEN
	count := testutil.CollectAndCount(collector)
	err := testutil.CollectAndCompare(collector, strings.NewReader(`
# HELP asus2go_anime_frames_written Number of frames written to the AniMe matrix
# TYPE asus2go_anime_frames_written counter
asus2go_anime_frames_written 42
# HELP asus2go_anime_playing Whether the animation list of the event is currently playing
# TYPE asus2go_anime_playing gauge
asus2go_anime_playing{event="boot"} 1
asus2go_anime_playing{event="shutdown"} 0
asus2go_anime_playing{event="system"} 0
asus2go_anime_playing{event="wake"} 0
`), "asus2go_anime_frames_written", "asus2go_anime_playing")

	// THEN
	assert.Equal(t, 8, count)
	assert.NoError(t, err)
}

func TestPlatformCollector_SkipsMissingControllers(t *testing.T) {
	// GIVEN
	collector := NewPlatformCollector(nil, nil, nil, &fakeCharge{limit: 80})

	// WHEN
	count := testutil.CollectAndCount(collector)
	err := testutil.CollectAndCompare(collector, strings.NewReader(`
# HELP asus2go_platform_charge_limit_percent Current battery charge limit
# TYPE asus2go_platform_charge_limit_percent gauge
asus2go_platform_charge_limit_percent 80
`))

	// THEN
	assert.Equal(t, 1, count)
	assert.NoError(t, err)
}

func TestNotifierCollector(t *testing.T) {
	// GIVEN
	notifier := controller.NewNotifier()
	notifier.Publish(controller.NotifyCharge, 60)
	notifier.Publish(controller.NotifyCharge, 70)
	collector := NewNotifierCollector(notifier)

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(`
# HELP asus2go_notifier_published Number of published change notifications
# TYPE asus2go_notifier_published counter
asus2go_notifier_published{signal="NotifyCharge"} 2
# HELP asus2go_notifier_subscribers Number of current event stream subscribers
# TYPE asus2go_notifier_subscribers gauge
asus2go_notifier_subscribers 0
`), "asus2go_notifier_published", "asus2go_notifier_subscribers")

	// THEN
	assert.NoError(t, err)
}
