package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notary-ally/internal/handlers"
)

// Deps holds dependencies for the HTTP router. It is built once in main.
type Deps struct {
	Appointments handlers.AppointmentService
	Mileage      handlers.MileageService
	Workflow     handlers.MileageWorkflow
	Journal      handlers.JournalService
	Location     handlers.LocationFinder
	DarkMode     handlers.Flag
	FAQ          *handlers.FAQHandler

	Store        handlers.Pinger
	StoreBackend string
	Lookup       handlers.Configurable
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	appointments := handlers.NewAppointmentHandler(deps.Appointments)
	mileage := handlers.NewMileageHandler(deps.Mileage, deps.Workflow)
	journal := handlers.NewJournalHandler(deps.Journal)
	prefs := handlers.NewPreferencesHandler(deps.DarkMode)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Store, deps.Lookup, deps.StoreBackend))

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", appointments.List)
			r.Post("/", appointments.Create)
			r.Get("/export", appointments.Export)
			r.Put("/{id}", appointments.Update)
		})

		r.Route("/mileage", func(r chi.Router) {
			r.Get("/", mileage.List)
			r.Get("/export", mileage.Export)
			r.Get("/draft", mileage.Draft)
			r.Put("/draft", mileage.UpdateDraft)
			r.Post("/draft/calculate", mileage.Calculate)
			r.Post("/draft/commit", mileage.Commit)
		})

		r.Route("/journal", func(r chi.Router) {
			r.Get("/", journal.List)
			r.Post("/", journal.Create)
			r.Get("/export", journal.Export)
		})

		r.Method(http.MethodPost, "/location", handlers.NewLocationHandler(deps.Location))

		r.Get("/preferences", prefs.Get)
		r.Put("/preferences", prefs.Update)

		r.Get("/faq", deps.FAQ.Items)
	})

	r.Get("/faq", deps.FAQ.Page)

	return r
}
