package anime

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/testingutils"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	path := filepath.Join(t.TempDir(), "image.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
	return path
}

func solidImage(width int, height int, value uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// writeGIF writes an animation with one solid frame per given value, each shown for delay hundredths of a second
func writeGIF(t *testing.T, delay int, values ...uint8) string {
	palette := color.Palette{color.Black}
	for _, v := range values {
		palette = append(palette, color.Gray{Y: v})
	}
	animation := &gif.GIF{}
	for i := range values {
		frame := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i + 1)
		}
		animation.Image = append(animation.Image, frame)
		animation.Delay = append(animation.Delay, delay)
	}
	path := filepath.Join(t.TempDir(), "animation.gif")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, gif.EncodeAll(file, animation))
	return path
}

func imageAction(path string, animTime AnimTime, brightness float64) ActionLoader {
	return ActionLoader{Image: &ImageAction{File: path, Scale: 1, Time: animTime, Brightness: brightness}}
}

func pauseAction(d time.Duration) ActionLoader {
	pause := Duration(d)
	return ActionLoader{Pause: &pause}
}

func emptyConfig() Config {
	return Config{
		System:          []ActionLoader{},
		Boot:            []ActionLoader{},
		Wake:            []ActionLoader{},
		Shutdown:        []ActionLoader{},
		Brightness:      1,
		AwakeEnabled:    true,
		BootAnimEnabled: true,
	}
}

var ga401 = capability.SupportedFunctions{
	Anime: capability.AnimeSupportedFunctions{Present: true, AnimeType: platform.AnimeTypeGA401},
}

func newTestEngine(t *testing.T, config Config, cache ActionCache) (*Engine, *testingutils.MockAttribute, *configstore.Store[Config]) {
	store := NewConfigStore(filepath.Join(t.TempDir(), ConfigFileName), false)
	require.NoError(t, store.Write(config))
	device := testingutils.NewMockAttribute("hidraw2", "")
	engine := NewEngine(ga401, device, store, cache, controller.NewNotifier(), 50*time.Millisecond)
	return engine, device, store
}

// centerLed returns the index of a led in the middle of the GA401 matrix
func centerLed() int {
	geometry := platform.AnimeTypeGA401.Geometry()
	return (geometry.Height/2)*geometry.Width + geometry.Width/2
}

type countingCache struct {
	entries map[string]ResolvedLists
	loads   int
	hits    int
	saves   int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]ResolvedLists{}}
}

func (c *countingCache) LoadActions(animeType platform.AnimeType, fingerprint []byte) (ResolvedLists, bool) {
	c.loads++
	lists, ok := c.entries[animeType.String()+string(fingerprint)]
	if ok {
		c.hits++
	}
	return lists, ok
}

func (c *countingCache) SaveActions(animeType platform.AnimeType, fingerprint []byte, lists ResolvedLists) error {
	c.saves++
	c.entries[animeType.String()+string(fingerprint)] = lists
	return nil
}
