package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/configstore"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnime struct {
	triggered []anime.Event
	direct    []byte
	on        bool
}

func (f *fakeAnime) OnOff() (bool, error) {
	return f.on, nil
}

func (f *fakeAnime) SetOnOff(on bool) error {
	f.on = on
	return nil
}

func (f *fakeAnime) BootOnOff() (bool, error) {
	return false, &controller.CapabilityError{Feature: "AniMe boot animation"}
}

func (f *fakeAnime) SetBootOnOff(bool) error {
	return &controller.CapabilityError{Feature: "AniMe boot animation"}
}

func (f *fakeAnime) WriteDirect(buffer []byte) error {
	f.direct = buffer
	return nil
}

func (f *fakeAnime) Config() (anime.Config, error) {
	return anime.DefaultConfig(), nil
}

func (f *fakeAnime) SetConfig(anime.Config) error {
	return nil
}

func (f *fakeAnime) Trigger(event anime.Event) error {
	f.triggered = append(f.triggered, event)
	return nil
}

func (f *fakeAnime) Status() anime.Status {
	return anime.Status{State: anime.StateIdle}
}

type testServices struct {
	rest      *echo.Echo
	threshold *testingutils.MockAttribute
	anime     *fakeAnime
	notifier  *controller.Notifier
}

func newTestServices(t *testing.T) testServices {
	supported := capability.SupportedFunctions{
		Charge: capability.ChargeSupportedFunctions{ChargeLevelSet: true},
	}
	notifier := controller.NewNotifier()
	gpu := controller.NewGpuController(supported, controller.GpuAttributes{}, notifier)
	threshold := testingutils.NewMockAttribute("charge_control_end_threshold", "80\n")
	fake := &fakeAnime{}

	services := Services{
		Supported: supported,
		Profile: controller.NewProfileController(supported, nil, nil,
			configstore.New[controller.ProfileConfig](filepath.Join(t.TempDir(), "profile.conf"), configstore.WithDefault(controller.DefaultProfileConfig)),
			notifier, controller.ProfileOptions{}),
		Led: controller.NewKeyboardLedController(supported, &platform.KeyboardLed{},
			configstore.New[controller.LedConfig](filepath.Join(t.TempDir(), "led.conf"), configstore.WithDefault(controller.DefaultLedConfig)),
			notifier),
		Gpu:        gpu,
		Bios:       controller.NewBiosController(supported, nil, gpu, nil, notifier),
		Charge:     controller.NewChargeController(supported, threshold, notifier),
		Anime:      fake,
		Notifier:   notifier,
		Registerer: prometheus.NewRegistry(),
	}
	return testServices{
		rest:      CreateRestService(services),
		threshold: threshold,
		anime:     fake,
		notifier:  notifier,
	}
}

func (s testServices) do(method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.rest.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) Result {
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestAlive(t *testing.T) {
	s := newTestServices(t)

	rec := s.do(http.MethodGet, "/alive", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSupported(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	rec := s.do(http.MethodGet, "/supported/", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var supported capability.SupportedFunctions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &supported))
	assert.True(t, supported.Charge.ChargeLevelSet)
	assert.False(t, supported.Anime.Present)
}

func TestChargeLimit(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	get := s.do(http.MethodGet, "/charge/limit", "")
	set := s.do(http.MethodPut, "/charge/limit", `{"value": 60}`)

	// THEN
	assert.Equal(t, http.StatusOK, get.Code)
	var value Value[uint8]
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &value))
	assert.Equal(t, uint8(80), value.Value)

	assert.Equal(t, http.StatusNoContent, set.Code)
	assert.Equal(t, "60", string(s.threshold.LastWrite()))
}

func TestInvalidValueIsBadRequest(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	rec := s.do(http.MethodPut, "/charge/limit", `{"value": 10}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Value", decodeResult(t, rec).Name)
	assert.Equal(t, 0, s.threshold.WriteCount())
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	rec := s.do(http.MethodPut, "/charge/limit", `{"value": `)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request", decodeResult(t, rec).Name)
}

func TestUnsupportedIsNotImplemented(t *testing.T) {
	s := newTestServices(t)

	for _, request := range []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/profile/", ""},
		{http.MethodPut, "/profile/", `{"value": "quiet"}`},
		{http.MethodGet, "/profile/quiet/curves/", ""},
		{http.MethodGet, "/led/brightness/", ""},
		{http.MethodPut, "/led/state/", `{"boot": true, "awake": true, "sleep": false, "keyboard": true}`},
		{http.MethodGet, "/gpu/mode/", ""},
		{http.MethodPut, "/gpu/mode/", `{"value": "integrated"}`},
		{http.MethodGet, "/bios/post-sound/", ""},
		{http.MethodPut, "/bios/panel-od/", `{"value": true}`},
		{http.MethodGet, "/anime/boot/", ""},
	} {
		rec := s.do(request.method, request.path, request.body)
		assert.Equal(t, http.StatusNotImplemented, rec.Code, "%s %s", request.method, request.path)
		assert.Equal(t, "Not Supported", decodeResult(t, rec).Name)
	}
}

func TestUnknownProfileParam(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	rec := s.do(http.MethodDelete, "/profile/turbo/curves/", "")

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnimeTrigger(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	ok := s.do(http.MethodPost, "/anime/trigger/wake", "")
	unknown := s.do(http.MethodPost, "/anime/trigger/hibernate", "")

	// THEN
	assert.Equal(t, http.StatusNoContent, ok.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, []anime.Event{anime.EventWake}, s.anime.triggered)
}

func TestAnimeDirect(t *testing.T) {
	// GIVEN
	s := newTestServices(t)
	body, err := json.Marshal(Value[[]byte]{Value: []byte{1, 2, 3}})
	require.NoError(t, err)

	// WHEN
	rec := s.do(http.MethodPut, "/anime/direct", string(body))

	// THEN
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []byte{1, 2, 3}, s.anime.direct)
}

func TestAnimeConfig(t *testing.T) {
	// GIVEN
	s := newTestServices(t)

	// WHEN
	rec := s.do(http.MethodGet, "/anime/config", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var config anime.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &config))
	assert.Equal(t, anime.DefaultConfig(), config)
}

func TestEvents(t *testing.T) {
	// GIVEN
	s := newTestServices(t)
	server := httptest.NewServer(s.rest)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))
	assert.Eventually(t, func() bool {
		return s.notifier.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	// WHEN
	s.notifier.Publish(controller.NotifyCharge, 70)

	// THEN
	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	require.NoError(t, err)
	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: NotifyCharge\n", event)
	assert.JSONEq(t, `{"signal": "NotifyCharge", "value": 70}`, strings.TrimPrefix(strings.TrimSpace(data), "data: "))

	cancel()
	assert.Eventually(t, func() bool {
		return s.notifier.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestServe_UnixSocket(t *testing.T) {
	// GIVEN
	s := newTestServices(t)
	socket := filepath.Join(t.TempDir(), "api.sock")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, s.rest, socket)
	}()
	client := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socket)
		},
	}}

	// WHEN
	var resp *http.Response
	assert.Eventually(t, func() bool {
		r, err := client.Get("http://asus2go/alive/")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 2*time.Second, 20*time.Millisecond)

	// THEN
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
