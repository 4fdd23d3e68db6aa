package dto

// RegisterTokenRequest stores a device push token for the caller.
type RegisterTokenRequest struct {
	Provider string `json:"provider" binding:"required,oneof=onesignal"`
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"omitempty,oneof=ios android web"`
}

// SendPushRequest delivers an immediate notification to the caller's own
// registered devices.
type SendPushRequest struct {
	Title   string `json:"title" binding:"omitempty,max=100"`
	Message string `json:"message" binding:"required,max=500"`
}
