// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"clinic_backend/internal/appointment"
	"clinic_backend/internal/auth"
	"clinic_backend/internal/config"
	"clinic_backend/internal/contact"
	"clinic_backend/internal/doctor"
	"clinic_backend/internal/jobs"
	"clinic_backend/internal/middleware"
	"clinic_backend/internal/shared"
	"clinic_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler        *auth.Handler
	userHandler        *user.Handler
	doctorHandler      *doctor.Handler
	appointmentHandler *appointment.Handler
	contactHandler     *contact.Handler

	// Jobs
	reminderJob *jobs.AppointmentReminderJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService shared.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	doctorHandler *doctor.Handler,
	appointmentHandler *appointment.Handler,
	contactHandler *contact.Handler,
	reminderJob *jobs.AppointmentReminderJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Middleware instances. Role middlewares are derived from the central
	// authorization policy so routes and policy cannot drift apart.
	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	adminMW := middleware.RequireRoles(auth.AllowedRoles(auth.OpManageDoctors)...)
	patientMW := middleware.RequireRoles(auth.AllowedRoles(auth.OpCancelAppointment)...)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Clinic API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	userHandler.RegisterRoutes(v1, authMW, adminMW)
	doctorHandler.RegisterRoutes(v1, authMW, adminMW)
	appointmentHandler.RegisterRoutes(v1, authMW, patientMW)
	contactHandler.RegisterRoutes(v1, authMW, adminMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:         httpServer,
		router:             router,
		cfg:                cfg,
		logger:             logger,
		authHandler:        authHandler,
		userHandler:        userHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		contactHandler:     contactHandler,
		reminderJob:        reminderJob,
	}, nil
}

func (s *Server) Start() error {
	if s.reminderJob != nil {
		if err := s.reminderJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start appointment reminder job", zap.Error(err))
		}
	} else {
		s.logger.Info("Appointment reminder job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.reminderJob != nil {
		s.reminderJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
