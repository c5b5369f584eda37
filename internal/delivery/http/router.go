package http

import (
	"net/http"

	"dentalcare-booking/internal/delivery/http/handler"
	"dentalcare-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	feedbackHandler    *handler.FeedbackHandler
	adminHandler       *handler.AdminHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	feedbackHandler *handler.FeedbackHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		feedbackHandler:    feedbackHandler,
		adminHandler:       adminHandler,
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

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Booking routes (public: single-user device, no patient accounts)
	api.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Feedback routes (public)
	api.HandleFunc("/feedback", r.feedbackHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/feedback/{appointmentId}", r.feedbackHandler.GetByAppointment).Methods(http.MethodGet)

	// Admin routes (protected)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.HandleFunc("/appointments", r.adminHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", r.adminHandler.ChangeStatus).Methods(http.MethodPut)
	admin.HandleFunc("/feedback", r.adminHandler.ListFeedback).Methods(http.MethodGet)
	admin.HandleFunc("/feedback/stats", r.adminHandler.FeedbackStats).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
