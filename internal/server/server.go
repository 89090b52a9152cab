// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urbansense/wastehub/api"
	"github.com/urbansense/wastehub/internal/ai"
	"github.com/urbansense/wastehub/internal/auth"
	"github.com/urbansense/wastehub/internal/cache"
	"github.com/urbansense/wastehub/internal/config"
	"github.com/urbansense/wastehub/internal/database"
	"github.com/urbansense/wastehub/internal/hubservice"
	"github.com/urbansense/wastehub/internal/monitoring"
	"github.com/urbansense/wastehub/internal/repository/files"
	"github.com/urbansense/wastehub/internal/repository/postgres"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
	readingsDB database.DB
	appDB      database.DB
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start wires up all dependencies and begins listening for requests
func (s *Server) Start() error {
	if err := s.initializeHubService(); err != nil {
		return err
	}
	s.monitoring = monitoring.NewService()
	s.setupTicketEventHandlers()

	authSvc := auth.New(s.config.Keycloak, s.config.Auth)
	s.srv.Handler = api.NewRouter(s.hubservice, authSvc, s.config.CORS)

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.readingsDB != nil {
		s.readingsDB.Close()
	}
	if s.appDB != nil {
		s.appDB.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupTicketEventHandlers() {
	s.hubservice.OnTicketEvent("ticket.created", func(id string) {
		s.monitoring.RecordEvent("ticket_created", map[string]string{
			"ticket_id": id,
		})
	})

	s.hubservice.OnTicketEvent("ticket.image_attached", func(id string) {
		s.monitoring.RecordEvent("ticket_image_attached", map[string]string{
			"ticket_id": id,
		})
	})
}

// initializeHubService creates and configures the hub service
func (s *Server) initializeHubService() error {
	s.readingsDB = initDB("readings", s.config.Database.ReadingsDB)
	s.appDB = initDB("app", s.config.Database.AppDB)

	readings, err := postgres.NewReadingRepository(s.readingsDB)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize reading repository: %v", err)
	}

	tickets, err := postgres.NewTicketRepository(s.appDB)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize ticket repository: %v", err)
	}

	images, err := files.NewImageStore(s.config.FileStore)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize image store: %v", err)
	}

	responseCache, err := cache.New(s.config.Redis)
	if err != nil {
		// The cache is an accelerator, not a dependency; run without it.
		nuts.L.Warnf("[Server] Redis unavailable, responses will not be cached: %v", err)
		responseCache = nil
	}

	model := ai.NewClient(s.config.Model)

	s.hubservice = hubservice.New(readings, tickets, images, model, responseCache, s.config.Devices, s.config.Model)
	return s.hubservice.Validate()
}

func initDB(name string, cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to %s database: %v", name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping %s database: %v", name, err)
	}
	return wrappedDB
}
