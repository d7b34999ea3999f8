package domain

// NotificationChannel identifies one outbound delivery mechanism.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
	ChannelPush  NotificationChannel = "push"
)

// NotificationOutcome is the result of one adapter invocation. Outcomes are
// logged and counted, never persisted.
type NotificationOutcome struct {
	Channel   NotificationChannel
	Recipient string
	Success   bool
	Err       error // nil when Success
}
