package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/upload"
)

// ListMemories handles GET /api/memories.
func (h *Handler) ListMemories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MemoryFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Favorite: q.Get("favorite") == "true",
	}
	filter.StartDate, filter.EndDate = dateRange(r)

	memories, err := h.repo.Memories.List(h.userID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memories)
}

// MemoryStats handles GET /api/memories/stats.
func (h *Handler) MemoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Memories.Stats(h.userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CreateMemory handles POST /api/memories. The body is either JSON or
// multipart/form-data with an optional "media" file part that is ingested
// and, for images, normalized before the record is stored.
func (h *Handler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	req, stored, ok := h.memoryRequest(w, r)
	if !ok {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	m := models.Memory{
		Title:      req.Title,
		Text:       req.Text,
		Date:       date,
		Category:   req.Category,
		Mood:       defaultStr(req.Mood, "Neutral"),
		Location:   req.Location,
		Tags:       models.StringList(req.Tags),
		IsFavorite: req.IsFavorite,
		Weather:    req.Weather,
		Duration:   req.Duration,
		MediaType:  "none",
		UserID:     h.userID,
	}
	applyMedia(&m, stored)

	if err := h.repo.Memories.Create(&m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// UpdateMemory handles PUT /api/memories/{id}. A new media file replaces the
// recorded path; the previous upload stays on disk.
func (h *Handler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}

	m, err := h.repo.Memories.Get(h.userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	req, stored, ok := h.memoryRequest(w, r)
	if !ok {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	m.Title = req.Title
	m.Text = req.Text
	m.Date = date
	m.Category = req.Category
	m.Mood = defaultStr(req.Mood, m.Mood)
	m.Location = req.Location
	m.Tags = models.StringList(req.Tags)
	m.IsFavorite = req.IsFavorite
	m.Weather = req.Weather
	m.Duration = req.Duration
	applyMedia(m, stored)

	if err := h.repo.Memories.Update(m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteMemory handles DELETE /api/memories/{id}. The referenced upload, if
// any, is left on disk.
func (h *Handler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.repo.Memories.Delete(h.userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// memoryRequest parses either body encoding, runs validation, and ingests
// the optional media file. Returns ok=false after writing the error
// response.
func (h *Handler) memoryRequest(w http.ResponseWriter, r *http.Request) (*MemoryRequest, *upload.StoredFile, bool) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		var req MemoryRequest
		if !decodeBody(w, r, &req) {
			return nil, nil, false
		}
		return &req, nil, true
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid multipart form"))
		return nil, nil, false
	}

	req := MemoryRequest{
		Title:      r.FormValue("title"),
		Text:       r.FormValue("text"),
		Date:       r.FormValue("date"),
		Category:   r.FormValue("category"),
		Mood:       r.FormValue("mood"),
		Location:   r.FormValue("location"),
		Weather:    r.FormValue("weather"),
		IsFavorite: r.FormValue("isFavorite") == "true",
	}
	if v := r.FormValue("duration"); v != "" {
		req.Duration, _ = strconv.Atoi(v)
	}
	if v := r.FormValue("tags"); v != "" {
		if err := json.Unmarshal([]byte(v), &req.Tags); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("tags must be a JSON array of strings"))
			return nil, nil, false
		}
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return nil, nil, false
	}

	file, header, err := r.FormFile("media")
	if errors.Is(err, http.ErrMissingFile) {
		return &req, nil, true
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid media file part"))
		return nil, nil, false
	}
	defer file.Close()

	stored, ok := h.ingestMedia(w, file, header)
	if !ok {
		return nil, nil, false
	}
	return &req, stored, true
}

// ingestMedia stores the uploaded file and normalizes images in place.
func (h *Handler) ingestMedia(w http.ResponseWriter, file multipart.File, header *multipart.FileHeader) (*upload.StoredFile, bool) {
	stored, err := h.uploads.Ingest(file, header.Header.Get("Content-Type"), header.Filename, header.Size)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if err := h.uploads.NormalizeImage(stored); err != nil {
		slog.Error("image normalization failed",
			slog.String("file", stored.Name),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorBody("image could not be processed"))
		return nil, false
	}
	return stored, true
}

func applyMedia(m *models.Memory, f *upload.StoredFile) {
	if f == nil {
		return
	}
	switch f.Kind {
	case upload.KindImage:
		m.Image = f.WebPath
	case upload.KindVideo:
		m.Video = f.WebPath
	}
	switch {
	case m.Image != "" && m.Video != "":
		m.MediaType = "both"
	case m.Image != "":
		m.MediaType = "image"
	case m.Video != "":
		m.MediaType = "video"
	default:
		m.MediaType = "none"
	}
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
