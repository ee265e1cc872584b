package configuration

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/ui"
	"golang.org/x/exp/slices"
)

const minAnimeTickRate = 10 * time.Millisecond

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validatePaths(config)
	if err != nil {
		return err
	}
	err = validateApi(config)
	if err != nil {
		return err
	}
	err = validateStatistics(config)
	if err != nil {
		return err
	}
	err = validateAnime(config)
	if err != nil {
		return err
	}
	err = validateNotifications(config)
	if err != nil {
		return err
	}
	return validateProfiles(config)
}

func validatePaths(config *Configuration) error {
	paths := map[string]string{
		"configDir": config.ConfigDir,
		"dbPath":    config.DbPath,
		"sysfsRoot": config.SysfsRoot,
		"devRoot":   config.DevRoot,
	}
	for _, key := range []string{"configDir", "dbPath", "sysfsRoot", "devRoot"} {
		path := paths[key]
		if len(path) <= 0 {
			return fmt.Errorf("%s: must not be empty", key)
		}
		if !filepath.IsAbs(path) {
			return fmt.Errorf("%s: must be an absolute path, got '%s'", key, path)
		}
	}
	return nil
}

func validateApi(config *Configuration) error {
	if !config.Api.Enabled {
		ui.Warning("The api is disabled, the daemon can not be controlled by clients")
		return nil
	}
	if len(config.Api.Socket) <= 0 {
		return errors.New("api.socket: must not be empty")
	}
	return nil
}

func validateStatistics(config *Configuration) error {
	if config.Statistics.Enabled && (config.Statistics.Port <= 0 || config.Statistics.Port >= 65535) {
		return fmt.Errorf("statistics.port: invalid port %d", config.Statistics.Port)
	}
	if config.Profiling.Enabled && (config.Profiling.Port <= 0 || config.Profiling.Port >= 65535) {
		return fmt.Errorf("profiling.port: invalid port %d", config.Profiling.Port)
	}
	return nil
}

func validateAnime(config *Configuration) error {
	if config.Anime.TickRate < minAnimeTickRate {
		return fmt.Errorf("anime.tickRate: must be at least %s, got %s", minAnimeTickRate, config.Anime.TickRate)
	}
	return nil
}

func validateNotifications(config *Configuration) error {
	if config.Notifications.Timeout < 0 {
		return errors.New("notifications.timeout: must not be negative")
	}
	urgency := config.Notifications.Urgency
	supported := []string{"low", "normal", "critical"}
	if urgency != "" && !slices.Contains(supported, urgency) {
		return fmt.Errorf("notifications.urgency: unsupported value '%s', use one of: %s", urgency, strings.Join(supported, " | "))
	}
	return nil
}

func validateProfiles(config *Configuration) error {
	seen := map[profiles.Profile]bool{}
	for _, profile := range config.Profiles.Enabled {
		if seen[profile] {
			return fmt.Errorf("profiles.enabled: duplicate profile %s", profile)
		}
		seen[profile] = true
	}
	for profile, fans := range config.Profiles.DefaultCurves {
		for fan, points := range fans {
			if err := profiles.ValidatePoints(points); err != nil {
				return fmt.Errorf("profiles.defaultCurves.%s.%s: %w", profile, fan, err)
			}
		}
	}
	return nil
}
