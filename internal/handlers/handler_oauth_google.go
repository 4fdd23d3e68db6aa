package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles the redirect-based Google OAuth code flow for
// web clients. Mobile clients use POST /auth/google with an ID token instead.
type GoogleOAuthHandler struct {
	googleAuth   portssvc.GoogleAuthSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(ga portssvc.GoogleAuthSvcFacade, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleAuth:   ga,
		userService:  us,
		tokenService: ts,
	}
}

const oauthStateCookie = "oauth_state"

// registerGoogleOAuthRoutes sets up the OAuth redirect flow routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleAuth, services.User, services.Token)

	oauth := rg.Group("/api/v1/oauth/google")
	{
		oauth.GET("/login", h.RedirectToGoogle)
		oauth.GET("/callback", h.HandleCallback)
	}
}

// RedirectToGoogle godoc
// @Summary Start Google OAuth flow
// @Description Redirects the browser to Google's consent screen.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /oauth/google/login [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	state, err := h.googleAuth.GenerateStateString(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start OAuth flow"})
		return
	}

	// State round-trips through a short-lived cookie for CSRF protection.
	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleAuth.GetGoogleLoginURL(c.Request.Context(), state))
}

// HandleCallback godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, signs the user in, and returns a token pair.
// @Tags oauth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /oauth/google/callback [get]
func (h *GoogleOAuthHandler) HandleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "OAuth state mismatch"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	token, err := h.googleAuth.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Warn("OAuth code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid authorization code"})
		return
	}

	userInfo, err := h.googleAuth.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch user info"})
		return
	}

	user, err := h.userService.EnsureGoogleUser(c.Request.Context(), userInfo.ID, userInfo.Name)
	if err != nil {
		logger.Error("Failed to ensure google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	refreshToken, _, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.UserResponse{ID: user.UserID, Username: user.Username, Name: user.Name},
	})
}
