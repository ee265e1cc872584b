package anime

import (
	"fmt"
	"time"

	"github.com/markusressel/asus2go/internal/platform"
)

// stillFrameDuration is the length of a single loop of a still image
const stillFrameDuration = time.Second

type ActionKind string

const (
	ActionAnimation ActionKind = "animation"
	ActionImage     ActionKind = "image"
	ActionPause     ActionKind = "pause"
)

// ActionData is the device ready form of an ActionLoader for a specific AnimeType
type ActionData struct {
	Kind ActionKind `cbor:"1,keyasint"`
	// Frames holds the luminance of every led, one entry per frame
	Frames     [][]byte        `cbor:"2,keyasint,omitempty"`
	Delays     []time.Duration `cbor:"3,keyasint,omitempty"`
	Time       AnimTime        `cbor:"4,keyasint"`
	Brightness float64         `cbor:"5,keyasint"`
	Pause      time.Duration   `cbor:"6,keyasint,omitempty"`
}

// ResolvedLists holds the ActionData of all animation lists of a config
type ResolvedLists struct {
	System   []ActionData `cbor:"1,keyasint"`
	Boot     []ActionData `cbor:"2,keyasint"`
	Wake     []ActionData `cbor:"3,keyasint"`
	Shutdown []ActionData `cbor:"4,keyasint"`
}

func (r *ResolvedLists) list(event Event) []ActionData {
	switch event {
	case EventBoot:
		return r.Boot
	case EventWake:
		return r.Wake
	case EventShutdown:
		return r.Shutdown
	}
	return r.System
}

// NewActionData loads the files referenced by loader and renders them for the given matrix type
func NewActionData(animeType platform.AnimeType, loader ActionLoader) (ActionData, error) {
	geometry := animeType.Geometry()
	switch loader.Kind() {
	case actionAsusAnimation:
		action := loader.AsusAnimation
		return newAnimation(action.File, geometry, Placement{Scale: 1}, action.Time, action.Brightness)
	case actionImageAnimation:
		action := loader.ImageAnimation
		return newAnimation(action.File, geometry, imagePlacement(action), action.Time, action.Brightness)
	case actionImage:
		action := loader.Image
		img, err := decodeImage(action.File)
		if err != nil {
			return ActionData{}, err
		}
		return ActionData{
			Kind:       ActionImage,
			Frames:     [][]byte{placeImage(img, geometry, imagePlacement(action))},
			Time:       action.Time,
			Brightness: action.Brightness,
		}, nil
	case actionPause:
		return ActionData{Kind: ActionPause, Pause: loader.Pause.Std()}, nil
	}
	return ActionData{}, fmt.Errorf("empty action")
}

func imagePlacement(action *ImageAction) Placement {
	return Placement{
		Scale:       action.Scale,
		Angle:       action.Angle,
		Translation: action.Translation,
		Fit:         true,
	}
}

func newAnimation(path string, geometry platform.AnimeGeometry, placement Placement, animTime AnimTime, brightness float64) (ActionData, error) {
	images, delays, err := decodeAnimation(path)
	if err != nil {
		return ActionData{}, err
	}
	frames := make([][]byte, len(images))
	for i, img := range images {
		frames[i] = placeImage(img, geometry, placement)
	}
	return ActionData{
		Kind:       ActionAnimation,
		Frames:     frames,
		Delays:     delays,
		Time:       animTime,
		Brightness: brightness,
	}, nil
}

// LoopDuration is the length of a single playback of the action
func (a ActionData) LoopDuration() time.Duration {
	switch a.Kind {
	case ActionAnimation:
		var total time.Duration
		for _, delay := range a.Delays {
			total += delay
		}
		return total
	case ActionImage:
		return stillFrameDuration
	case ActionPause:
		return a.Pause
	}
	return 0
}

// Duration returns the total play time of the action, false if it plays until interrupted
func (a ActionData) Duration() (time.Duration, bool) {
	if a.Kind == ActionPause {
		return a.Pause, true
	}
	switch a.Time.Kind {
	case AnimTimeCount:
		return time.Duration(a.Time.Count) * a.LoopDuration(), true
	case AnimTimeFade:
		fade := a.Time.Fade
		if fade.ShowFor == nil {
			return 0, false
		}
		return fade.FadeIn.Std() + fade.ShowFor.Std() + fade.FadeOut.Std(), true
	}
	return 0, false
}

// FadeFactor returns the brightness multiplier of the fade ramp at the given elapsed time
func (a ActionData) FadeFactor(elapsed time.Duration) float64 {
	if a.Time.Kind != AnimTimeFade || a.Time.Fade == nil {
		return 1
	}
	fade := a.Time.Fade
	fadeIn := fade.FadeIn.Std()
	if elapsed < fadeIn {
		return float64(elapsed) / float64(fadeIn)
	}
	if fade.ShowFor == nil {
		return 1
	}
	fadeOutStart := fadeIn + fade.ShowFor.Std()
	if elapsed < fadeOutStart {
		return 1
	}
	fadeOut := fade.FadeOut.Std()
	if fadeOut <= 0 {
		return 0
	}
	remaining := fadeOutStart + fadeOut - elapsed
	if remaining <= 0 {
		return 0
	}
	return float64(remaining) / float64(fadeOut)
}

// IsFading checks whether elapsed lies inside the fade in or fade out ramp
func (a ActionData) IsFading(elapsed time.Duration) bool {
	if a.Time.Kind != AnimTimeFade || a.Time.Fade == nil {
		return false
	}
	factor := a.FadeFactor(elapsed)
	return factor > 0 && factor < 1
}

// FrameAt returns the luminance frame shown at the given elapsed time
func (a ActionData) FrameAt(elapsed time.Duration) []byte {
	if len(a.Frames) == 0 {
		return nil
	}
	if a.Kind != ActionAnimation || len(a.Frames) == 1 {
		return a.Frames[0]
	}
	loop := a.LoopDuration()
	if loop <= 0 {
		return a.Frames[0]
	}
	position := elapsed % loop
	for i, delay := range a.Delays {
		if position < delay {
			return a.Frames[i]
		}
		position -= delay
	}
	return a.Frames[len(a.Frames)-1]
}

// ResolveLists resolves all lists of a config. Actions that fail to resolve are
// returned as errors and left out of the result.
func ResolveLists(animeType platform.AnimeType, config Config) (ResolvedLists, []error) {
	var errs []error
	resolve := func(name string, loaders []ActionLoader) []ActionData {
		result := make([]ActionData, 0, len(loaders))
		for i, loader := range loaders {
			data, err := NewActionData(animeType, loader)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", name, i, err))
				continue
			}
			result = append(result, data)
		}
		return result
	}
	return ResolvedLists{
		System:   resolve("system", config.System),
		Boot:     resolve("boot", config.Boot),
		Wake:     resolve("wake", config.Wake),
		Shutdown: resolve("shutdown", config.Shutdown),
	}, errs
}
