package ui

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogInfo  = "dialog-information"
	IconDialogWarn  = "dialog-warning"

	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"
)

// DesktopNotification is a message shown in the graphical session of the current user
type DesktopNotification struct {
	Urgency string
	Icon    string
	Title   string
	Text    string
	// Timeout in milliseconds, 0 keeps the default of the notification daemon
	Timeout int
}

func NotifyInfo(title, text string) {
	NotifySend(DesktopNotification{Urgency: UrgencyLow, Icon: IconDialogInfo, Title: title, Text: text})
}

func NotifyWarn(title, text string) {
	NotifySend(DesktopNotification{Urgency: UrgencyNormal, Icon: IconDialogWarn, Title: title, Text: text})
}

func NotifyError(title, text string) {
	NotifySend(DesktopNotification{Urgency: UrgencyCritical, Icon: IconDialogError, Title: title, Text: text})
}

// NotifySend shows the notification using notify-send, run as the user owning the display session
func NotifySend(notification DesktopNotification) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Warning("Cannot send notification, missing env variable 'DISPLAY'!")
		return
	}

	cmd := exec.Command("who")
	output, err := cmd.Output()
	if err != nil {
		Warning("Cannot send notification, unable to find user of display session: %v", err)
		return
	}
	user := findDisplayUser(string(output), display)
	if len(user) <= 0 {
		Warning("Cannot send notification, unable to detect user of current display session")
		return
	}

	cmd = exec.Command("id", "-u", user)
	output, err = cmd.Output()
	userIdString := strings.TrimSpace(string(output))
	if len(userIdString) <= 0 {
		Warning("Cannot send notification, unable to detect user id: %v", err)
		return
	}

	cmd = exec.Command("sudo", notifySendArgs(user, userIdString, display, notification)...)
	err = cmd.Run()
	if err != nil {
		Error("Error sending notification: %v", err)
	}
}

// findDisplayUser returns the user of the `who` output line belonging to display
func findDisplayUser(who string, display string) string {
	for _, line := range strings.Split(who, "\n") {
		if strings.Contains(line, display) {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return strings.TrimSpace(fields[0])
			}
		}
	}
	return ""
}

func notifySendArgs(user string, userId string, display string, notification DesktopNotification) []string {
	args := []string{"-u", user,
		"DISPLAY=" + display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/" + userId + "/bus",
		"notify-send",
		"-a", "asus2go",
		"-u", notification.Urgency,
		"-i", notification.Icon,
	}
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(notification.Timeout))
	}
	return append(args, notification.Title, notification.Text)
}
