package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/wellandwilde/landing-be/internal/models"
	"github.com/wellandwilde/landing-be/internal/services"
)

const (
	msgSubscribed        = "Successfully subscribed to our newsletter!"
	msgInvalidEmail      = "Invalid email address. Please enter a valid email."
	msgAlreadySubscribed = "This email is already subscribed to our newsletter."
	msgSubscribeFailed   = "An error occurred while subscribing. Please try again."
	msgListFailed        = "Failed to retrieve subscribers"
)

// maxBodyBytes bounds the intake payload; an email never needs more.
const maxBodyBytes = 1 << 16

// SubscriptionHandler handles HTTP requests for newsletter signups.
type SubscriptionHandler struct {
	service services.SubscriptionServiceProvider
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(service services.SubscriptionServiceProvider) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// SubscribePayload is the intake request body.
type SubscribePayload struct {
	Email string `json:"email"`
}

// SubscriberSummary is the subscriber echoed back after a signup.
type SubscriberSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SubscribeResponse is the 201 body.
type SubscribeResponse struct {
	Message    string            `json:"message"`
	Subscriber SubscriberSummary `json:"subscriber"`
}

// SubscribersResponse is the listing body.
type SubscribersResponse struct {
	Subscribers []models.Subscriber `json:"subscribers"`
}

// Subscribe handles a newsletter signup.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var payload SubscribePayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		log.Debug().Err(err).Msg("Malformed subscribe payload")
		writeMessage(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}

	sub, err := h.service.Subscribe(r.Context(), payload.Email)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidEmail):
		writeMessage(w, http.StatusBadRequest, msgInvalidEmail)
		return
	case errors.Is(err, services.ErrAlreadySubscribed):
		writeMessage(w, http.StatusBadRequest, msgAlreadySubscribed)
		return
	default:
		log.Error().Err(err).Str("email", payload.Email).Msg("Subscription error")
		writeMessage(w, http.StatusInternalServerError, msgSubscribeFailed)
		return
	}

	writeJSON(w, http.StatusCreated, SubscribeResponse{
		Message:    msgSubscribed,
		Subscriber: SubscriberSummary{ID: sub.ID, Email: sub.Email},
	})
}

// List returns every subscriber.
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubscribers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list subscribers")
		writeMessage(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	if subs == nil {
		subs = []models.Subscriber{}
	}
	writeJSON(w, http.StatusOK, SubscribersResponse{Subscribers: subs})
}
