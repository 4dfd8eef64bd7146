package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solmara/cuna/internal/backup"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/upload"
)

// Handler holds API route handlers. userID scopes every repository call;
// the server is single-profile today but the scoping is explicit.
type Handler struct {
	repo    *repository.Repo
	uploads *upload.Store
	backups *backup.Service
	userID  uint
}

// NewHandler creates a new Handler.
func NewHandler(repo *repository.Repo, uploads *upload.Store, backups *backup.Service, userID uint) *Handler {
	return &Handler{repo: repo, uploads: uploads, backups: backups, userID: userID}
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decodeBody decodes a JSON request body into req and validates it.
// Returns false after writing the error response.
func decodeBody[T interface{ Validate() error }](w http.ResponseWriter, r *http.Request, req *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := (*req).Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}

// dateRange reads optional startDate/endDate query parameters; both must be
// present for a range filter to apply.
func dateRange(r *http.Request) (*time.Time, *time.Time) {
	start, err1 := parseDate(r.URL.Query().Get("startDate"))
	end, err2 := parseDate(r.URL.Query().Get("endDate"))
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &start, &end
}

// boolQuery reads an optional boolean query parameter as a tri-state.
func boolQuery(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
