package configuration

type NotificationConfig struct {
	// Enabled shows a desktop notification for every change made through the api
	Enabled DefaultTrueBool `json:"enabled"`
	// Urgency passed to notify-send, one of low, normal, critical
	Urgency string `json:"urgency"`
	// Timeout of the notification in milliseconds, 0 uses the notification daemon default
	Timeout int `json:"timeout"`
}
