package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wellgrid/hbp-api/internal/handlers"
)

// NewRouter sets up the API and report routes.
func NewRouter(auth *handlers.AuthHandler, wells *handlers.WellHandler, report *handlers.ReportHandler, metrics *handlers.MetricsHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	// Well data endpoints require a token.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware)
	api.HandleFunc("/wells/{api_num}", wells.GetWell).Methods(http.MethodGet)
	api.HandleFunc("/wells/{api_num}", wells.DeleteWell).Methods(http.MethodDelete)
	api.HandleFunc("/groups/{api_nums}", wells.GetGroup).Methods(http.MethodGet)

	// Report pages stay public, like the records they are built from.
	router.HandleFunc("/", report.EntryForm).Methods(http.MethodGet)
	router.HandleFunc("/report", report.Report).Methods(http.MethodGet, http.MethodPost)

	router.HandleFunc("/metrics", metrics.Metrics).Methods(http.MethodGet)

	return router
}
