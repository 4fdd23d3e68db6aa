package domain

import "time"

// User represents a registered user of the application.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	// GoogleSubject links an account created through Google sign-in.
	GoogleSubject *string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the profile returned by Google's userinfo endpoint
// during the OAuth code flow.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
