package api

import (
	"log/slog"
	"net/http"
)

// CreateBackup handles POST /api/backups: build one archive now and return
// its path. Unlike the scheduled run, failures surface to the caller.
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backups.Create(r.Context())
	if err != nil {
		slog.Error("on-demand backup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("backup failed"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// ListBackups handles GET /api/backups.
func (h *Handler) ListBackups(w http.ResponseWriter, r *http.Request) {
	archives, err := h.backups.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"backups": archives})
}

// PruneBackups handles POST /api/backups/prune.
func (h *Handler) PruneBackups(w http.ResponseWriter, r *http.Request) {
	var req PruneRequest
	if !decodeBody(w, r, &req) {
		return
	}
	deleted, err := h.backups.Prune(req.Keep)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
