package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/solmara/cuna/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a 500 without leaking details.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrUnsupportedMediaType):
		writeJSON(w, http.StatusUnsupportedMediaType, errorBody("only image and video files are allowed"))
	case errors.Is(err, apperr.ErrPayloadTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("file exceeds the upload size limit"))
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
