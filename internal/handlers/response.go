package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/middlewares"
	"github.com/sbilibin2017/sport-together/internal/models"
	"github.com/sbilibin2017/sport-together/internal/services"
)

// Response is the envelope of every API answer. Message holds the payload
// on success and a human readable reason on failure.
// swagger:model Response
type Response struct {
	// Whether the operation succeeded
	// default: true
	Success bool `json:"success"`

	// Payload or failure reason
	Message any `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, Response{Success: true, Message: payload})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeError maps a service error onto a status code and failure message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *services.MissingFieldError
	switch {
	case errors.As(err, &missing):
		writeFailure(w, http.StatusBadRequest, missing.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		writeFailure(w, http.StatusConflict, "That email address has already been taken.")
	case errors.Is(err, services.ErrDuplicateUsername):
		writeFailure(w, http.StatusConflict, "That username has already been taken.")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, services.ErrSessionExpired):
		writeFailure(w, http.StatusUnauthorized, "Session expired, please log in again")
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrGameNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotGameOwner):
		writeFailure(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUnknownField),
		errors.Is(err, services.ErrInvalidUpdate),
		errors.Is(err, services.ErrUnsupportedSport),
		errors.Is(err, models.ErrEmptyUpdate):
		writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
		writeFailure(w, http.StatusInternalServerError, "500 Server Error.")
	}
}

// decode reads a JSON body into dst and answers 400 when it is malformed.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// sessionUser returns the id of the authenticated user, answering 401 when
// the request carries no session.
func sessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	s, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Session expired, please log in again")
		return "", false
	}
	return s.UserID, true
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Page Not Found"))
	}
}
