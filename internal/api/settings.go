package api

import (
	"encoding/json"
	"net/http"

	"github.com/solmara/cuna/internal/models"
)

// GetProfile handles GET /api/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.repo.Users.Get(h.userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	user, err := h.repo.Users.Get(h.userID)
	if err != nil {
		writeError(w, err)
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.DueDate = dueDate
	user.BabyName = defaultStr(req.BabyName, user.BabyName)
	user.Gender = defaultStr(req.Gender, user.Gender)
	user.DoctorName = req.DoctorName
	user.Hospital = req.Hospital
	user.PartnerName = req.PartnerName
	user.BloodType = req.BloodType
	user.Allergies = req.Allergies
	user.Notes = req.Notes
	if req.ConceptionDate != "" {
		cd, err := parseDate(req.ConceptionDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		user.ConceptionDate = &cd
	}

	if err := h.repo.Users.Update(user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateSettings handles PUT /api/settings, merging the request body over
// the stored settings map.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var patch models.JSONMap
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	merged, err := h.repo.Users.MergeSettings(h.userID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}
