package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/solmara/cuna/internal/backup"
	"github.com/solmara/cuna/internal/repository"
	"github.com/solmara/cuna/internal/upload"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(repo *repository.Repo, uploads *upload.Store, backups *backup.Service, userID uint, authEnabled bool, token string) chi.Router {
	h := NewHandler(repo, uploads, backups, userID)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/memories", func(r chi.Router) {
		r.Get("/", h.ListMemories)
		r.Get("/stats", h.MemoryStats)
		r.Post("/", h.CreateMemory)
		r.Put("/{id}", h.UpdateMemory)
		r.Delete("/{id}", h.DeleteMemory)
	})

	r.Route("/journal", func(r chi.Router) {
		r.Get("/", h.ListJournal)
		r.Get("/stats", h.JournalStats)
		r.Post("/", h.CreateJournalEntry)
		r.Put("/{id}", h.UpdateJournalEntry)
		r.Delete("/{id}", h.DeleteJournalEntry)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Get("/stats", h.TaskStats)
		r.Post("/", h.CreateTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", h.ListAppointments)
		r.Get("/upcoming", h.UpcomingAppointments)
		r.Post("/", h.CreateAppointment)
		r.Put("/{id}", h.UpdateAppointment)
		r.Delete("/{id}", h.DeleteAppointment)
	})

	r.Route("/medical", func(r chi.Router) {
		r.Get("/", h.ListMedicalRecords)
		r.Get("/type/{type}", h.MedicalRecordsByType)
		r.Post("/", h.CreateMedicalRecord)
		r.Put("/{id}", h.UpdateMedicalRecord)
		r.Delete("/{id}", h.DeleteMedicalRecord)
	})

	r.Get("/profile", h.GetProfile)
	r.Put("/profile", h.UpdateProfile)
	r.Put("/settings", h.UpdateSettings)

	r.Route("/backups", func(r chi.Router) {
		r.Get("/", h.ListBackups)
		r.Post("/", h.CreateBackup)
		r.Post("/prune", h.PruneBackups)
	})

	return r
}
