package api

import (
	"net/http"

	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
)

// ListJournal handles GET /api/journal.
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.JournalFilter{
		Search: q.Get("search"),
		Mood:   q.Get("mood"),
	}
	filter.StartDate, filter.EndDate = dateRange(r)

	entries, err := h.repo.Journal.List(h.userID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// JournalStats handles GET /api/journal/stats.
func (h *Handler) JournalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Journal.Stats(h.userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CreateJournalEntry handles POST /api/journal.
func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req JournalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	e := models.JournalEntry{
		Title:     req.Title,
		Text:      req.Text,
		Date:      date,
		Mood:      defaultStr(req.Mood, "Neutral"),
		Energy:    req.Energy,
		Symptoms:  models.StringList(req.Symptoms),
		Gratitude: req.Gratitude,
		Tags:      models.StringList(req.Tags),
		IsPrivate: req.IsPrivate,
		UserID:    h.userID,
	}
	if e.Energy == 0 {
		e.Energy = 5
	}

	if err := h.repo.Journal.Create(&e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// UpdateJournalEntry handles PUT /api/journal/{id}.
func (h *Handler) UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	e, err := h.repo.Journal.Get(h.userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req JournalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	e.Title = req.Title
	e.Text = req.Text
	e.Date = date
	e.Mood = defaultStr(req.Mood, e.Mood)
	if req.Energy > 0 {
		e.Energy = req.Energy
	}
	e.Symptoms = models.StringList(req.Symptoms)
	e.Gratitude = req.Gratitude
	e.Tags = models.StringList(req.Tags)
	e.IsPrivate = req.IsPrivate

	if err := h.repo.Journal.Update(e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteJournalEntry handles DELETE /api/journal/{id}.
func (h *Handler) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.repo.Journal.Delete(h.userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
