package client

import (
	"net/http"

	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/api"
	"github.com/markusressel/asus2go/internal/capability"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/profiles"
)

func (c *Client) Supported() (capability.SupportedFunctions, error) {
	var supported capability.SupportedFunctions
	err := c.do(http.MethodGet, "/supported/", nil, &supported)
	return supported, err
}

func (c *Client) Profile() (profiles.Profile, error) {
	return get[profiles.Profile](c, "/profile/")
}

func (c *Client) SetProfile(profile profiles.Profile) error {
	return put(c, "/profile/", profile)
}

func (c *Client) Profiles() ([]profiles.Profile, error) {
	return get[[]profiles.Profile](c, "/profiles/")
}

func (c *Client) NextProfile() (profiles.Profile, error) {
	var value api.Value[profiles.Profile]
	err := c.do(http.MethodPost, "/profile/next/", nil, &value)
	return value.Value, err
}

func curvesPath(profile profiles.Profile) string {
	return "/profile/" + profile.String() + "/curves/"
}

func (c *Client) FanCurves(profile profiles.Profile) ([]profiles.CurveData, error) {
	return get[[]profiles.CurveData](c, curvesPath(profile))
}

func (c *Client) SetFanCurve(profile profiles.Profile, curve profiles.CurveData) error {
	return c.do(http.MethodPut, curvesPath(profile), curve, nil)
}

func (c *Client) SetFanCurvesEnabled(profile profiles.Profile, enabled bool) error {
	return put(c, curvesPath(profile)+"enabled/", enabled)
}

func (c *Client) ResetFanCurves(profile profiles.Profile) error {
	return c.do(http.MethodDelete, curvesPath(profile), nil, nil)
}

func (c *Client) LedBrightness() (controller.KbdBrightness, error) {
	return get[controller.KbdBrightness](c, "/led/brightness/")
}

func (c *Client) SetLedBrightness(brightness controller.KbdBrightness) error {
	return put(c, "/led/brightness/", brightness)
}

func (c *Client) SetRgbMode(mode controller.KbdRgbMode) error {
	return c.do(http.MethodPut, "/led/mode/", mode, nil)
}

func (c *Client) SetRgbState(state controller.KbdRgbState) error {
	return c.do(http.MethodPut, "/led/state/", state, nil)
}

func (c *Client) GpuMode() (platform.GpuMode, error) {
	return get[platform.GpuMode](c, "/gpu/mode/")
}

// SetGpuMode returns the mode the hardware reports after the switch
func (c *Client) SetGpuMode(mode platform.GpuMode) (platform.GpuMode, error) {
	var value api.Value[platform.GpuMode]
	err := c.do(http.MethodPut, "/gpu/mode/", api.Value[platform.GpuMode]{Value: mode}, &value)
	return value.Value, err
}

func (c *Client) GpuPower() (controller.GpuPowerStatus, error) {
	return get[controller.GpuPowerStatus](c, "/gpu/power/")
}

func (c *Client) AnimeOn() (bool, error) {
	return get[bool](c, "/anime/on/")
}

func (c *Client) SetAnimeOn(on bool) error {
	return put(c, "/anime/on/", on)
}

func (c *Client) AnimeBootOn() (bool, error) {
	return get[bool](c, "/anime/boot/")
}

func (c *Client) SetAnimeBootOn(on bool) error {
	return put(c, "/anime/boot/", on)
}

func (c *Client) AnimeWriteDirect(buffer []byte) error {
	return put(c, "/anime/direct/", buffer)
}

func (c *Client) AnimeConfig() (anime.Config, error) {
	var config anime.Config
	err := c.do(http.MethodGet, "/anime/config/", nil, &config)
	return config, err
}

func (c *Client) SetAnimeConfig(config anime.Config) error {
	return c.do(http.MethodPut, "/anime/config/", config, nil)
}

func (c *Client) AnimeTrigger(event anime.Event) error {
	return c.do(http.MethodPost, "/anime/trigger/"+event.String()+"/", nil, nil)
}

func (c *Client) AnimeStatus() (anime.Status, error) {
	var status anime.Status
	err := c.do(http.MethodGet, "/anime/status/", nil, &status)
	return status, err
}

func (c *Client) PostSound() (bool, error) {
	return get[bool](c, "/bios/post-sound/")
}

func (c *Client) SetPostSound(enabled bool) error {
	return put(c, "/bios/post-sound/", enabled)
}

func (c *Client) DedicatedGfx() (bool, error) {
	return get[bool](c, "/bios/dedicated-gfx/")
}

func (c *Client) SetDedicatedGfx(enabled bool) error {
	return put(c, "/bios/dedicated-gfx/", enabled)
}

func (c *Client) PanelOverdrive() (bool, error) {
	return get[bool](c, "/bios/panel-od/")
}

func (c *Client) SetPanelOverdrive(enabled bool) error {
	return put(c, "/bios/panel-od/", enabled)
}

func (c *Client) ChargeLimit() (uint8, error) {
	return get[uint8](c, "/charge/limit/")
}

func (c *Client) SetChargeLimit(limit uint8) error {
	return put(c, "/charge/limit/", limit)
}
