package http

import (
	"net/http"

	"clinic-outreach-service/internal/delivery/http/handler"
	"clinic-outreach-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	scheduleHandler    *handler.ScheduleHandler
	searchHandler      *handler.SearchHandler
	settingsHandler    *handler.SettingsHandler
	syncHandler        *handler.SyncHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	scheduleHandler *handler.ScheduleHandler,
	searchHandler *handler.SearchHandler,
	settingsHandler *handler.SettingsHandler,
	syncHandler *handler.SyncHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		scheduleHandler:    scheduleHandler,
		searchHandler:      searchHandler,
		settingsHandler:    settingsHandler,
		syncHandler:        syncHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)

	// Everything else requires a valid session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient directory
	protected.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients", r.patientHandler.ResetPatients).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.appointmentHandler.ResetAppointments).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Scheduling grid
	protected.HandleFunc("/schedule/grid", r.scheduleHandler.GetDayGrid).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/availability", r.scheduleHandler.CheckAvailability).Methods(http.MethodGet)

	// Search
	protected.HandleFunc("/search", r.searchHandler.Search).Methods(http.MethodGet)

	// Settings
	protected.HandleFunc("/settings", r.settingsHandler.GetSettings).Methods(http.MethodGet)
	protected.HandleFunc("/settings", r.settingsHandler.UpdateSettings).Methods(http.MethodPut)
	protected.HandleFunc("/settings/reset", r.settingsHandler.ResetSettings).Methods(http.MethodPost)

	// Sync
	protected.HandleFunc("/sync", r.syncHandler.TriggerSync).Methods(http.MethodPost)
	protected.HandleFunc("/sync/status", r.syncHandler.GetSyncStatus).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
