package dto

// RegisterUserRequest creates a password-based account.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,max=100"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest rotates an access token using a refresh token.
type RefreshTokenRequest struct {
	UserID       string `json:"userId" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleSignInRequest exchanges a Google ID token for a session.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
