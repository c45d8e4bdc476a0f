package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bookmarks/internal/domain"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

const (
	msgNotFound    = "Bookmark doesn't exist"
	msgServerError = "server error"
)

type errorMessage struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorMessage `json:"error"`
}

// debugErrorResponse is the 500 body outside production.
type debugErrorResponse struct {
	Message string       `json:"message"`
	Error   errorMessage `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: errorMessage{Message: message}})
}

// writeError maps a service error to its HTTP response.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		d.Logger.Debug("rejected request",
			logger.String("path", r.URL.Path),
			logger.String("reason", string(ve.Reason)))
		writeMessage(w, http.StatusBadRequest, ve.Error())

	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)

	default:
		d.Logger.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))

		if d.Production {
			writeMessage(w, http.StatusInternalServerError, msgServerError)
			return
		}
		writeJSON(w, http.StatusInternalServerError, debugErrorResponse{
			Message: err.Error(),
			Error:   errorMessage{Message: err.Error()},
		})
	}
}
