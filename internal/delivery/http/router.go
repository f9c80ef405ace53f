package http

import (
	"net/http"

	"medassist/internal/delivery/http/handler"
	"medassist/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	doctorHandler   *handler.DoctorHandler
	patientHandler  *handler.PatientHandler
	analysisHandler *handler.AnalysisHandler
	summaryHandler  *handler.SummaryHandler
	auditLogHandler *handler.AuditLogHandler
	functionHandler *handler.FunctionHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	analysisHandler *handler.AnalysisHandler,
	summaryHandler *handler.SummaryHandler,
	auditLogHandler *handler.AuditLogHandler,
	functionHandler *handler.FunctionHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		doctorHandler:   doctorHandler,
		patientHandler:  patientHandler,
		analysisHandler: analysisHandler,
		summaryHandler:  summaryHandler,
		auditLogHandler: auditLogHandler,
		functionHandler: functionHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// AI functions (public, stateless)
	functions := r.router.PathPrefix("/functions/v1").Subrouter()
	functions.HandleFunc("/analyze-symptoms", r.functionHandler.AnalyzeSymptoms).Methods(http.MethodPost)
	functions.HandleFunc("/suggest-treatment", r.functionHandler.SuggestTreatment).Methods(http.MethodPost)
	functions.HandleFunc("/summarize-records", r.functionHandler.SummarizeRecords).Methods(http.MethodPost)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/logout-all", r.authHandler.LogoutAll).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.NewRoute().Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/doctors/me", r.doctorHandler.UpdateSelfProfile).Methods(http.MethodPut)

	doctor.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	doctor.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	doctor.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	doctor.HandleFunc("/patients/{id}/analyses", r.analysisHandler.CreateAnalysis).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{id}/symptom-records", r.analysisHandler.GetSymptomRecords).Methods(http.MethodGet)
	doctor.HandleFunc("/patients/{id}/summaries", r.summaryHandler.CreateSummary).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{id}/summaries", r.summaryHandler.GetSummaries).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// CORS wraps the router so preflights never reach route matching
	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
