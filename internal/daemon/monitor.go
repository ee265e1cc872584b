package daemon

import (
	"context"
	"fmt"

	"github.com/markusressel/asus2go/internal/anime"
	"github.com/markusressel/asus2go/internal/configuration"
	"github.com/markusressel/asus2go/internal/controller"
	"github.com/markusressel/asus2go/internal/platform"
	"github.com/markusressel/asus2go/internal/profiles"
	"github.com/markusressel/asus2go/internal/ui"
)

const notificationBufferSize = 16

// NotificationMonitor shows a desktop notification for every change published by the controllers
type NotificationMonitor struct {
	notifier *controller.Notifier
	config   configuration.NotificationConfig
	send     func(ui.DesktopNotification)
}

func NewNotificationMonitor(notifier *controller.Notifier, config configuration.NotificationConfig) *NotificationMonitor {
	return &NotificationMonitor{
		notifier: notifier,
		config:   config,
		send:     ui.NotifySend,
	}
}

func (m *NotificationMonitor) Run(ctx context.Context) error {
	id, notifications := m.notifier.Subscribe(notificationBufferSize)
	defer m.notifier.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return nil
		case notification, ok := <-notifications:
			if !ok {
				return nil
			}
			desktop, ok := m.format(notification)
			if !ok {
				continue
			}
			m.send(desktop)
		}
	}
}

func (m *NotificationMonitor) format(notification controller.Notification) (ui.DesktopNotification, bool) {
	title, text, ok := describeNotification(notification)
	if !ok {
		return ui.DesktopNotification{}, false
	}
	urgency := m.config.Urgency
	if urgency == "" {
		urgency = ui.UrgencyLow
	}
	return ui.DesktopNotification{
		Urgency: urgency,
		Icon:    ui.IconDialogInfo,
		Title:   title,
		Text:    text,
		Timeout: m.config.Timeout,
	}, true
}

// describeNotification returns the title and text shown for a notification,
// false for changes that are not worth interrupting the user for
func describeNotification(notification controller.Notification) (string, string, bool) {
	switch value := notification.Value.(type) {
	case profiles.Profile:
		return "Profile", fmt.Sprintf("Profile %s is active", value), true
	case controller.KbdBrightness:
		return "Keyboard", fmt.Sprintf("Keyboard brightness set to %s", value), true
	case controller.KbdRgbMode:
		return "Keyboard", fmt.Sprintf("Keyboard mode set to %d", value.Mode), true
	case controller.KbdRgbState:
		return "Keyboard", "Keyboard power states changed", true
	case platform.GpuMode:
		return "Graphics", fmt.Sprintf("Graphics mode is now %s, log out to apply", value), true
	case controller.BiosSetting:
		return "BIOS", fmt.Sprintf("%s %s", value.Name, enabledText(value.Value)), true
	case uint8:
		if notification.Signal == controller.NotifyCharge {
			return "Battery", fmt.Sprintf("Charge limit set to %d%%", value), true
		}
	case anime.Change:
		switch value.Name {
		case "on":
			return "AniMe", fmt.Sprintf("AniMe matrix %s", enabledText(value.Value == true)), true
		case "boot_on":
			return "AniMe", fmt.Sprintf("AniMe boot animation %s", enabledText(value.Value == true)), true
		case "config":
			return "AniMe", "AniMe animations reloaded", true
		}
	}
	return "", "", false
}

func enabledText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
