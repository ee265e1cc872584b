package anime

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/ui"
	"github.com/markusressel/asus2go/internal/util"
	"github.com/qdm12/reprint"
)

type Event int

const (
	EventSystem Event = iota
	EventBoot
	EventWake
	EventShutdown
)

var eventNames = []string{"system", "boot", "wake", "shutdown"}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("unknown(%d)", int(e))
}

func ParseEvent(text string) (Event, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	for i, name := range eventNames {
		if name == needle {
			return Event(i), nil
		}
	}
	return EventSystem, fmt.Errorf("unknown event: %s, must be one of: %s", text, strings.Join(eventNames, ", "))
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Event) UnmarshalText(text []byte) error {
	event, err := ParseEvent(string(text))
	if err != nil {
		return err
	}
	*e = event
	return nil
}

type State string

const (
	StateIdle          State = "idle"
	StatePlaying       State = "playing"
	StateTransitioning State = "transitioning"
)

type Status struct {
	State   State         `json:"state"`
	Event   Event         `json:"event"`
	Index   int           `json:"index"`
	Elapsed time.Duration `json:"elapsed"`
}

type Stats struct {
	FramesWritten uint64
	WriteErrors   uint64
	// write latency of the last frames in milliseconds
	MaxWriteLatency float64
	AvgWriteLatency float64
}

// Change is the value of a NotifyAnime notification
type Change struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ActionCache stores resolved action lists, keyed by matrix type
type ActionCache interface {
	LoadActions(animeType platform.AnimeType, fingerprint []byte) (ResolvedLists, bool)
	SaveActions(animeType platform.AnimeType, fingerprint []byte, lists ResolvedLists) error
}

const latencyWindowSize = 50

// Engine plays the configured animation lists on the matrix.
// All state, including the device, is guarded by mu, so a trigger waits for an in-flight frame write.
type Engine struct {
	mu sync.Mutex

	present   bool
	animeType platform.AnimeType
	device    attr.Attribute
	store     *configstore.Store[Config]
	cache     ActionCache
	notifier  *controller.Notifier
	tickRate  time.Duration

	config Config
	lists  ResolvedLists

	playing   bool
	event     Event
	index     int
	elapsed   time.Duration
	lastFrame []byte

	framesWritten uint64
	writeErrors   uint64
	latency       *rolling.PointPolicy

	// failedWrites counts the frame writes that failed in a row
	failedWrites int
}

func NewEngine(
	supported capability.SupportedFunctions,
	device attr.Attribute,
	store *configstore.Store[Config],
	cache ActionCache,
	notifier *controller.Notifier,
	tickRate time.Duration,
) *Engine {
	e := &Engine{
		present:   supported.Anime.Present,
		animeType: supported.Anime.AnimeType,
		device:    device,
		store:     store,
		cache:     cache,
		notifier:  notifier,
		tickRate:  tickRate,
		latency:   util.CreateRollingWindow(latencyWindowSize),
	}
	if !e.present {
		return e
	}

	config, err := store.Load()
	if err != nil {
		ui.Warning("Could not load AniMe config: %v", err)
	}
	lists, errs := e.resolve(config)
	for _, err := range errs {
		ui.Warning("Skipping AniMe action %v", err)
	}
	e.config = config
	e.lists = lists
	return e
}

func (e *Engine) requirePresent() error {
	if !e.present {
		return &controller.CapabilityError{Feature: "AniMe matrix"}
	}
	return nil
}

func (e *Engine) resolve(config Config) (ResolvedLists, []error) {
	fingerprint, err := Fingerprint(e.animeType, config)
	if err != nil {
		ui.Debug("Could not fingerprint AniMe config: %v", err)
	}
	if e.cache != nil && fingerprint != nil {
		if lists, ok := e.cache.LoadActions(e.animeType, fingerprint); ok {
			ui.Debug("Using cached AniMe actions for %s", e.animeType)
			return lists, nil
		}
	}

	lists, errs := ResolveLists(e.animeType, config)
	if e.cache != nil && fingerprint != nil && len(errs) == 0 {
		if err := e.cache.SaveActions(e.animeType, fingerprint, lists); err != nil {
			ui.Warning("Could not cache AniMe actions: %v", err)
		}
	}
	return lists, errs
}

// Run advances playback once per tick until ctx is cancelled.
// The last written frame stays on the device.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.requirePresent(); err != nil {
		return err
	}
	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.tick(e.tickRate)
		}
	}
}

// Trigger starts playback of the list belonging to event, replacing the current playback
func (e *Engine) Trigger(event Event) error {
	if err := e.requirePresent(); err != nil {
		return err
	}
	if event < EventSystem || event > EventShutdown {
		return &controller.ValidationError{Field: "event", Err: fmt.Errorf("unknown event %d", event)}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.eventEnabled(event) {
		ui.Debug("Ignoring AniMe %s trigger, it is disabled", event)
		return nil
	}
	e.start(event)
	e.notifier.Publish(controller.NotifyAnime, Change{Name: "trigger", Value: event})
	return nil
}

func (e *Engine) eventEnabled(event Event) bool {
	switch event {
	case EventBoot, EventShutdown:
		return e.config.BootAnimEnabled
	}
	return e.config.AwakeEnabled
}

func (e *Engine) start(event Event) {
	e.event = event
	e.index = 0
	e.elapsed = 0
	e.lastFrame = nil
	e.playing = true
	if len(e.lists.list(event)) == 0 {
		e.exhausted()
	}
}

func (e *Engine) stop() {
	e.playing = false
	e.index = 0
	e.elapsed = 0
}

// exhausted handles reaching the end of the current list
func (e *Engine) exhausted() {
	switch e.event {
	case EventSystem:
		if len(e.lists.System) > 0 && e.config.AwakeEnabled {
			e.index = 0
			return
		}
	case EventBoot, EventWake:
		if len(e.lists.System) > 0 && e.config.AwakeEnabled {
			e.event = EventSystem
			e.index = 0
			return
		}
	}
	e.stop()
}

func (e *Engine) current() ActionData {
	return e.lists.list(e.event)[e.index]
}

// advance moves past every action whose play time has been used up by elapsed
func (e *Engine) advance() {
	limit := len(e.lists.System) + len(e.lists.Boot) + len(e.lists.Wake) + len(e.lists.Shutdown) + 1
	for steps := 0; e.playing; steps++ {
		if steps > limit {
			ui.Warning("AniMe %s list has no playable action, stopping", e.event)
			e.stop()
			return
		}
		duration, finite := e.current().Duration()
		if !finite || e.elapsed < duration {
			return
		}
		e.elapsed -= duration
		e.index++
		if e.index >= len(e.lists.list(e.event)) {
			e.exhausted()
		}
	}
}

func (e *Engine) tick(dt time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return
	}
	e.elapsed += dt
	e.advance()
	if !e.playing {
		return
	}

	action := e.current()
	if action.Kind == ActionPause {
		return
	}
	frame := e.render(action)
	if err := e.writeFrame(frame); err != nil {
		if e.failedWrites == 0 {
			ui.Warning("Could not write AniMe frame: %v", err)
		} else {
			ui.Debug("Could not write AniMe frame: %v", err)
		}
		e.failedWrites++
	} else if e.failedWrites > 0 {
		ui.Info("AniMe frame writes recovered after %d errors", e.failedWrites)
		e.failedWrites = 0
	}
	e.lastFrame = frame
}

// render computes the device frame of the action at the current elapsed time
func (e *Engine) render(action ActionData) []byte {
	luminance := action.FrameAt(e.elapsed)
	factor := action.Brightness * action.FadeFactor(e.elapsed) * e.config.Brightness
	frame := make([]byte, e.animeType.FrameLength())
	for i, value := range luminance {
		if i >= len(frame) {
			break
		}
		frame[i] = byte(util.Clamp(math.Round(float64(value)*factor), 0, 255))
	}
	return frame
}

func (e *Engine) writeFrame(frame []byte) error {
	packets, err := framePackets(e.animeType, frame)
	if err != nil {
		return err
	}
	start := time.Now()
	for _, packet := range packets {
		if err := e.device.Write(packet); err != nil {
			e.writeErrors++
			return &controller.DeviceError{Attribute: e.device.Name(), Err: err}
		}
	}
	e.latency.Append(float64(time.Since(start).Microseconds()) / 1000)
	e.framesWritten++
	return nil
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return Status{State: StateIdle}
	}
	state := StatePlaying
	if e.current().IsFading(e.elapsed) {
		state = StateTransitioning
	}
	return Status{State: state, Event: e.event, Index: e.index, Elapsed: e.elapsed}
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		FramesWritten:   e.framesWritten,
		WriteErrors:     e.writeErrors,
		MaxWriteLatency: util.GetWindowMax(e.latency),
		AvgWriteLatency: util.GetWindowAvg(e.latency),
	}
}

func (e *Engine) AnimeType() platform.AnimeType {
	return e.animeType
}

func (e *Engine) Config() (Config, error) {
	if err := e.requirePresent(); err != nil {
		return Config{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return reprint.This(e.config).(Config), nil
}

// SetConfig resolves and persists the given config, then swaps it in as a whole.
// Playback of the current event restarts from the beginning of its new list.
func (e *Engine) SetConfig(config Config) error {
	if err := e.requirePresent(); err != nil {
		return err
	}
	NormalizeConfig(&config)
	lists, errs := e.resolve(config)
	if len(errs) > 0 {
		return &controller.ValidationError{Field: "config", Err: errors.Join(errs...)}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Write(config); err != nil {
		return err
	}
	e.config = config
	e.lists = lists
	if e.playing {
		if e.eventEnabled(e.event) {
			e.start(e.event)
		} else {
			e.stop()
		}
	}
	e.notifier.Publish(controller.NotifyAnime, Change{Name: "config"})
	return nil
}

func (e *Engine) OnOff() (bool, error) {
	if err := e.requirePresent(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.AwakeEnabled, nil
}

// SetOnOff turns the matrix on or off and enables or disables the system and wake animations
func (e *Engine) SetOnOff(on bool) error {
	if err := e.requirePresent(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.device.Write(packetOnOff(on)); err != nil {
		return &controller.DeviceError{Attribute: e.device.Name(), Err: err}
	}
	e.config.AwakeEnabled = on
	e.persist()

	if on && !e.playing {
		e.start(EventSystem)
	}
	if !on && e.playing && (e.event == EventSystem || e.event == EventWake) {
		e.stop()
	}
	e.notifier.Publish(controller.NotifyAnime, Change{Name: "on", Value: on})
	return nil
}

func (e *Engine) BootOnOff() (bool, error) {
	if err := e.requirePresent(); err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config.BootAnimEnabled, nil
}

func (e *Engine) SetBootOnOff(on bool) error {
	if err := e.requirePresent(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, packet := range [][]byte{packetBootOnOff(on), packetBootApply()} {
		if err := e.device.Write(packet); err != nil {
			return &controller.DeviceError{Attribute: e.device.Name(), Err: err}
		}
	}
	e.config.BootAnimEnabled = on
	e.persist()
	e.notifier.Publish(controller.NotifyAnime, Change{Name: "boot_on", Value: on})
	return nil
}

// WriteDirect writes a single frame buffer, bypassing playback.
// The buffer must contain one brightness value per led of the matrix.
func (e *Engine) WriteDirect(buffer []byte) error {
	if err := e.requirePresent(); err != nil {
		return err
	}
	if len(buffer) != e.animeType.FrameLength() {
		return &controller.ValidationError{
			Field: "buffer",
			Err:   fmt.Errorf("length %d, %s requires %d", len(buffer), e.animeType, e.animeType.FrameLength()),
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writeFrame(buffer)
}

func (e *Engine) persist() {
	if err := e.store.Write(e.config); err != nil {
		ui.Warning("Could not persist AniMe config: %v", err)
	}
}
