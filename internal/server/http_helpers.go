package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"spylingo/internal/game"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeGameError maps an engine failure onto an HTTP status. Expected
// conditions stay 4xx; anything else is treated as a persistence or
// internal failure.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidOption), errors.Is(err, game.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, err.Error())
	case game.IsUserError(err):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
