package anime

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/asus2go/internal/configstore"
)

// Duration is a time.Duration using the {"secs":N,"nanos":N} json representation
type Duration time.Duration

type jsonDuration struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

func Seconds(secs float64) Duration {
	return Duration(time.Duration(secs * float64(time.Second)))
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if d < 0 {
		return nil, fmt.Errorf("negative duration %v", time.Duration(d))
	}
	return json.Marshal(jsonDuration{
		Secs:  uint64(time.Duration(d) / time.Second),
		Nanos: uint32(time.Duration(d) % time.Second),
	})
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var value jsonDuration
	if err := configstore.DecodeStrict(data, &value); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	if value.Nanos >= uint32(time.Second) {
		return fmt.Errorf("duration: nanos %d out of range", value.Nanos)
	}
	*d = Duration(time.Duration(value.Secs)*time.Second + time.Duration(value.Nanos))
	return nil
}

// Vec2 is a 2D vector, encoded as [x, y]
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

func (v *Vec2) UnmarshalJSON(data []byte) error {
	var value [2]float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("vec2: %w", err)
	}
	v.X, v.Y = value[0], value[1]
	return nil
}

type Fade struct {
	FadeIn Duration `json:"fade_in"`
	// ShowFor is nil if the action is shown until interrupted
	ShowFor *Duration `json:"show_for,omitempty"`
	FadeOut Duration  `json:"fade_out"`
}

type AnimTimeKind string

const (
	AnimTimeFade     AnimTimeKind = "Fade"
	AnimTimeInfinite AnimTimeKind = "Infinite"
	AnimTimeCount    AnimTimeKind = "Count"
)

// AnimTime is the playback duration policy of an action
type AnimTime struct {
	Kind  AnimTimeKind
	Fade  *Fade
	Count uint32
}

func NewFade(fadeIn Duration, showFor *Duration, fadeOut Duration) AnimTime {
	return AnimTime{Kind: AnimTimeFade, Fade: &Fade{FadeIn: fadeIn, ShowFor: showFor, FadeOut: fadeOut}}
}

func Infinite() AnimTime {
	return AnimTime{Kind: AnimTimeInfinite}
}

func Count(n uint32) AnimTime {
	return AnimTime{Kind: AnimTimeCount, Count: n}
}

func (t AnimTime) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case AnimTimeInfinite:
		return json.Marshal(string(AnimTimeInfinite))
	case AnimTimeCount:
		return json.Marshal(map[string]uint32{string(AnimTimeCount): t.Count})
	case AnimTimeFade:
		if t.Fade == nil {
			return nil, errors.New("fade time without fade values")
		}
		return json.Marshal(map[string]*Fade{string(AnimTimeFade): t.Fade})
	}
	return nil, fmt.Errorf("unknown anim time %q", t.Kind)
}

func (t *AnimTime) UnmarshalJSON(data []byte) error {
	var unit string
	if err := json.Unmarshal(data, &unit); err == nil {
		if AnimTimeKind(unit) != AnimTimeInfinite {
			return fmt.Errorf("unknown anim time %q", unit)
		}
		*t = Infinite()
		return nil
	}

	tag, value, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("anim time: %w", err)
	}
	switch AnimTimeKind(tag) {
	case AnimTimeCount:
		var count uint32
		if err := json.Unmarshal(value, &count); err != nil {
			return fmt.Errorf("anim time count: %w", err)
		}
		*t = Count(count)
	case AnimTimeFade:
		var fade Fade
		if err := configstore.DecodeStrict(value, &fade); err != nil {
			return fmt.Errorf("anim time fade: %w", err)
		}
		*t = AnimTime{Kind: AnimTimeFade, Fade: &fade}
	default:
		return fmt.Errorf("unknown anim time %q", tag)
	}
	return nil
}

// AsusAnimationAction plays a gif made for the matrix, pixels map 1:1 to leds
type AsusAnimationAction struct {
	File       string   `json:"file"`
	Time       AnimTime `json:"time"`
	Brightness float64  `json:"brightness"`
}

// ImageAction places an image or animated image on the matrix
type ImageAction struct {
	File        string   `json:"file"`
	Scale       float64  `json:"scale"`
	Angle       float64  `json:"angle"`
	Translation Vec2     `json:"translation"`
	Time        AnimTime `json:"time"`
	Brightness  float64  `json:"brightness"`
}

const (
	actionAsusAnimation  = "AsusAnimation"
	actionImageAnimation = "ImageAnimation"
	actionImage          = "Image"
	actionPause          = "Pause"
)

// ActionLoader is a single user defined step of an animation list.
// Exactly one of the fields is set.
type ActionLoader struct {
	AsusAnimation  *AsusAnimationAction
	ImageAnimation *ImageAction
	Image          *ImageAction
	Pause          *Duration
}

func (a ActionLoader) Kind() string {
	switch {
	case a.AsusAnimation != nil:
		return actionAsusAnimation
	case a.ImageAnimation != nil:
		return actionImageAnimation
	case a.Image != nil:
		return actionImage
	case a.Pause != nil:
		return actionPause
	}
	return ""
}

func (a ActionLoader) MarshalJSON() ([]byte, error) {
	var value any
	switch a.Kind() {
	case actionAsusAnimation:
		value = a.AsusAnimation
	case actionImageAnimation:
		value = a.ImageAnimation
	case actionImage:
		value = a.Image
	case actionPause:
		value = a.Pause
	default:
		return nil, errors.New("empty action")
	}
	return json.Marshal(map[string]any{a.Kind(): value})
}

func (a *ActionLoader) UnmarshalJSON(data []byte) error {
	tag, value, err := decodeTagged(data)
	if err != nil {
		return fmt.Errorf("action: %w", err)
	}

	var result ActionLoader
	switch tag {
	case actionAsusAnimation:
		result.AsusAnimation = &AsusAnimationAction{}
		err = configstore.DecodeStrict(value, result.AsusAnimation)
	case actionImageAnimation:
		result.ImageAnimation = &ImageAction{}
		err = configstore.DecodeStrict(value, result.ImageAnimation)
	case actionImage:
		result.Image = &ImageAction{}
		err = configstore.DecodeStrict(value, result.Image)
	case actionPause:
		result.Pause = new(Duration)
		err = json.Unmarshal(value, result.Pause)
	default:
		return fmt.Errorf("unknown action %q", tag)
	}
	if err != nil {
		return fmt.Errorf("action %s: %w", tag, err)
	}
	*a = result
	return nil
}

// decodeTagged splits an externally tagged value {"Tag": value}
func decodeTagged(data []byte) (string, json.RawMessage, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return "", nil, err
	}
	if len(tagged) != 1 {
		return "", nil, fmt.Errorf("expected exactly one variant, got %d", len(tagged))
	}
	for tag, value := range tagged {
		return tag, value, nil
	}
	return "", nil, nil
}
