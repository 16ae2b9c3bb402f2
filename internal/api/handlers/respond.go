package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// MessageResponse is the body of every non-data reply.
type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("Failed to write response body")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// MethodNotAllowed replies with a JSON 405.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound replies with a JSON 404.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not found")
}

// Unauthorized replies with a JSON 401.
func Unauthorized(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusUnauthorized, "Unauthorized")
}

// NoContent answers a plain OPTIONS request with an empty 200.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
