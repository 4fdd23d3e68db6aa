package domain

import "time"

// PushProviderOneSignal is the only push provider currently registered.
const PushProviderOneSignal = "onesignal"

// NotificationToken is a device push token registered for a user.
// Tokens are unique per (provider, token) and reassignable between users
// when a device changes hands.
type NotificationToken struct {
	TokenID   string    `json:"id"`
	UserID    string    `json:"userId"`
	Provider  string    `json:"provider"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobStatus is the recorded outcome of one background job execution.
type JobStatus string

const (
	JobSuccess JobStatus = "success"
	JobFailed  JobStatus = "failed"
)

// JobLog is an append-only record of a background job outcome.
type JobLog struct {
	UserID  *string
	JobType string
	Status  JobStatus
	Error   *string
}
