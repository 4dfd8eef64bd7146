package api

import (
	"net/http"
	"strconv"

	"github.com/solmara/cuna/internal/models"
	"github.com/solmara/cuna/internal/repository"
)

// ListAppointments handles GET /api/appointments.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	filter := repository.AppointmentFilter{
		Type:      r.URL.Query().Get("type"),
		Completed: boolQuery(r, "completed"),
	}
	filter.StartDate, filter.EndDate = dateRange(r)

	appointments, err := h.repo.Appointments.List(h.userID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

// UpcomingAppointments handles GET /api/appointments/upcoming.
func (h *Handler) UpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	appointments, err := h.repo.Appointments.Upcoming(h.userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

// CreateAppointment handles POST /api/appointments.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	a := models.Appointment{
		Title:     req.Title,
		Date:      date,
		Doctor:    req.Doctor,
		Location:  req.Location,
		Type:      defaultStr(req.Type, "Checkup"),
		Notes:     req.Notes,
		Completed: req.Completed,
		Reminder:  req.Reminder,
		Results:   req.Results,
		UserID:    h.userID,
	}

	if err := h.repo.Appointments.Create(&a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAppointment handles PUT /api/appointments/{id}.
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	a, err := h.repo.Appointments.Get(h.userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req AppointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	a.Title = req.Title
	a.Date = date
	a.Doctor = req.Doctor
	a.Location = req.Location
	a.Type = defaultStr(req.Type, a.Type)
	a.Notes = req.Notes
	a.Completed = req.Completed
	a.Reminder = req.Reminder
	a.Results = req.Results

	if err := h.repo.Appointments.Update(a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DeleteAppointment handles DELETE /api/appointments/{id}.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return
	}
	if err := h.repo.Appointments.Delete(h.userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
