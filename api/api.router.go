// FilePath: api/api.router.go
package api

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/urbansense/wastehub/api/middleware"
	"github.com/urbansense/wastehub/api/resources"
	"github.com/urbansense/wastehub/internal/auth"
	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	handler   http.Handler
	auth      *middleware.AuthMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, authSvc *auth.Service, cors config.CORSConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAuthMiddleware(authSvc),
		resources: resources.NewResources(svc, authSvc),
	}

	r.setupRoutes()

	r.handler = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cors.AllowedOrigins),
		gorillahandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.AllowCredentials(),
	)(r.router)

	return r
}

func (r *Router) setupRoutes() {
	// API prefix
	api := r.router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.resources.Sensors.HealthCheck).Methods(http.MethodGet)

	// Sensors
	sensors := api.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("/latest", r.resources.Sensors.GetLatest).Methods(http.MethodGet)
	sensors.HandleFunc("/history", r.resources.Sensors.GetHistory).Methods(http.MethodGet)
	sensors.HandleFunc("/device/{deviceId}", r.resources.Sensors.GetDeviceReadings).Methods(http.MethodGet)

	// Tickets
	tickets := api.PathPrefix("/tickets").Subrouter()
	tickets.HandleFunc("", r.resources.Tickets.List).Methods(http.MethodGet)
	tickets.HandleFunc("", r.resources.Tickets.Create).Methods(http.MethodPost)
	tickets.HandleFunc("/{ticketId}", r.resources.Tickets.Get).Methods(http.MethodGet)
	tickets.HandleFunc("/{ticketId}/status", r.resources.Tickets.UpdateStatus).Methods(http.MethodPatch)

	// Model-backed endpoints
	ai := api.PathPrefix("/ai").Subrouter()
	ai.HandleFunc("/chat", r.resources.AI.Chat).Methods(http.MethodPost)
	ai.HandleFunc("/vision", r.resources.AI.Vision).Methods(http.MethodPost)

	// Voice agent
	voice := api.PathPrefix("/voice").Subrouter()
	voice.HandleFunc("/context", r.resources.Voice.Context).Methods(http.MethodGet)
	voice.HandleFunc("/query", r.resources.Voice.Query).Methods(http.MethodPost)
	voice.HandleFunc("/action", r.resources.Voice.Action).Methods(http.MethodPost)

	// Auth
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", r.resources.Auth.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", r.resources.Auth.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", r.resources.Auth.Logout).Methods(http.MethodPost)

	profile := authRoutes.PathPrefix("/profile").Subrouter()
	profile.Use(r.auth.Authenticate)
	profile.HandleFunc("", r.resources.Auth.Profile).Methods(http.MethodGet)

	// Stored files
	api.HandleFunc("/files/{name}", r.resources.Files.GetFile).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
