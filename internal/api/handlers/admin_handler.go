package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wellandwilde/landing-be/internal/auth"
	"github.com/wellandwilde/landing-be/internal/services"
)

// AdminHandler handles administrator login.
type AdminHandler struct {
	service      services.UserServiceProvider
	tokens       *auth.Manager
	secureCookie bool
}

// NewAdminHandler creates a new AdminHandler. secureCookie marks the session
// cookie Secure and should be set whenever the API is served over TLS.
func NewAdminHandler(service services.UserServiceProvider, tokens *auth.Manager, secureCookie bool) *AdminHandler {
	return &AdminHandler{service: service, tokens: tokens, secureCookie: secureCookie}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles admin authentication and JWT generation.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Authentication error")
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate JWT")
		writeMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
