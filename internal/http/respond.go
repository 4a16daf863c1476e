package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/gamecsv"
	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/session"
)

const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps domain errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var verr *game.ValidationError
	var ferr *gamecsv.FormatError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Missing = verr.Missing
	case errors.As(err, &ferr):
		status = http.StatusUnprocessableEntity
		resp.Row, resp.Column = ferr.Row, ferr.Column
	case errors.Is(err, game.ErrInvalidAction), errors.Is(err, session.ErrUnknownDialog):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrSubmitInProgress):
		status = http.StatusConflict
	case errors.Is(err, session.ErrPersist), errors.Is(err, library.ErrCorruptCache):
		status = http.StatusInsufficientStorage
	}
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// decodeJSON reads a single JSON object, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
