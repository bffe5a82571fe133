package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/service"
	"github.com/taskden/taskden/pkg/httpx"
	"github.com/taskden/taskden/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService

	TokenTTL      time.Duration
	SecureCookies bool
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registeredUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserInfo(u domain.User) userInfo {
	return userInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// HandleRegister creates a new account and starts a session.
//
//	@Summary		Register a new user
//	@Description	Creates a user, sets the session cookie, and returns the issued token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Credentials"
//	@Success		201		{object}	map[string]any	"message, user{username,email,token}"
//	@Failure		400		{object}	apiError		"Missing fields"
//	@Failure		422		{object}	apiError		"Username or email taken"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errBadRequest.WriteError(w)
		return
	}

	user, token, err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			errBadRequest.WriteError(w)
		case errors.Is(err, service.ErrUserExists):
			errConflict.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			errServer.WriteError(w)
		}
		return
	}

	httpx.SetSessionCookie(w, token, h.ttl(), h.SecureCookies)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user": registeredUser{
			Username: user.Username,
			Email:    user.Email,
			Token:    token,
		},
	})
}

// HandleLogin verifies credentials and starts a session.
//
//	@Summary		Log in
//	@Description	Accepts a username or an email plus a password, sets the session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	map[string]any	"message, token"
//	@Failure		400		{object}	apiError		"Missing fields or unknown user"
//	@Failure		401		{object}	apiError		"Wrong password"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		errBadRequest.WriteError(w)
		return
	}

	token, err := h.AuthService.Login(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			errBadRequest.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			errUserNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			errInvalidPassword.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			errServer.WriteError(w)
		}
		return
	}

	httpx.SetSessionCookie(w, token, h.ttl(), h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User logged in successfully",
		"token":   token,
	})
}

// HandleMe returns the authenticated user.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	map[string]any	"user"
//	@Failure		401	{object}	apiError		"Not authenticated"
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		errUnauthorized.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user": toUserInfo(user),
	})
}

// HandleLogout clears the session cookie. The token itself stays valid
// until expiry; there is no server-side revocation list.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	map[string]string	"message"
//	@Router		/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User logged out successfully",
	})
}

func (h *AuthHandler) ttl() time.Duration {
	if h.TokenTTL > 0 {
		return h.TokenTTL
	}
	return 24 * time.Hour
}
