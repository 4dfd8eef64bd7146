package api

import (
	"net/http"
	"time"

	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
)

// ListTasks handles GET /api/tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.TaskFilter{
		Category:  q.Get("category"),
		Priority:  q.Get("priority"),
		Search:    q.Get("search"),
		Completed: boolQuery(r, "completed"),
	}

	tasks, err := h.repo.Tasks.List(h.userID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// TaskStats handles GET /api/tasks/stats.
func (h *Handler) TaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Tasks.Stats(h.userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t := models.Task{
		Text:          req.Text,
		Category:      defaultStr(req.Category, "General"),
		Completed:     req.Completed,
		Priority:      defaultStr(req.Priority, "Medium"),
		Notes:         req.Notes,
		EstimatedCost: req.EstimatedCost,
		UserID:        h.userID,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		t.DueDate = &due
	}
	if t.Completed {
		now := time.Now()
		t.CompletedDate = &now
	}

	if err := h.repo.Tasks.Create(&t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTask handles PUT /api/tasks/{id}. Marking a task completed stamps
// its completion date; reopening clears it.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	t, err := h.repo.Tasks.Get(h.userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	wasCompleted := t.Completed
	t.Text = req.Text
	t.Category = defaultStr(req.Category, t.Category)
	t.Completed = req.Completed
	t.Priority = defaultStr(req.Priority, t.Priority)
	t.Notes = req.Notes
	t.EstimatedCost = req.EstimatedCost
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		t.DueDate = &due
	} else {
		t.DueDate = nil
	}
	switch {
	case t.Completed && !wasCompleted:
		now := time.Now()
		t.CompletedDate = &now
	case !t.Completed:
		t.CompletedDate = nil
	}

	if err := h.repo.Tasks.Update(t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.repo.Tasks.Delete(h.userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
