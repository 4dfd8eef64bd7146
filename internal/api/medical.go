package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
)

// ListMedicalRecords handles GET /api/medical.
func (h *Handler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	filter := repository.MedicalFilter{
		Type: r.URL.Query().Get("type"),
	}
	filter.StartDate, filter.EndDate = dateRange(r)

	records, err := h.repo.Medical.List(h.userID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// MedicalRecordsByType handles GET /api/medical/type/{type}, returning one
// measurement series oldest-first for charting.
func (h *Handler) MedicalRecordsByType(w http.ResponseWriter, r *http.Request) {
	recordType := chi.URLParam(r, "type")
	if recordType == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("type is required"))
		return
	}
	records, err := h.repo.Medical.ByType(h.userID, recordType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateMedicalRecord handles POST /api/medical.
func (h *Handler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var req MedicalRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	m := models.MedicalRecord{
		Date:     date,
		Type:     req.Type,
		Value:    req.Value,
		Unit:     req.Unit,
		Notes:    req.Notes,
		Week:     req.Week,
		IsNormal: true,
		UserID:   h.userID,
	}
	if req.IsNormal != nil {
		m.IsNormal = *req.IsNormal
	}

	if err := h.repo.Medical.Create(&m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// UpdateMedicalRecord handles PUT /api/medical/{id}.
func (h *Handler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	m, err := h.repo.Medical.Get(h.userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req MedicalRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	m.Date = date
	m.Type = req.Type
	m.Value = req.Value
	m.Unit = req.Unit
	m.Notes = req.Notes
	m.Week = req.Week
	if req.IsNormal != nil {
		m.IsNormal = *req.IsNormal
	}

	if err := h.repo.Medical.Update(m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteMedicalRecord handles DELETE /api/medical/{id}.
func (h *Handler) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.repo.Medical.Delete(h.userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
