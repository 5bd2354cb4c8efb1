// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"clinic_backend/internal/app"
	"clinic_backend/internal/appointment"
	"clinic_backend/internal/auth"
	"clinic_backend/internal/config"
	"clinic_backend/internal/contact"
	"clinic_backend/internal/doctor"
	"clinic_backend/internal/email"
	"clinic_backend/internal/filestorage"
	"clinic_backend/internal/jobs"
	"clinic_backend/internal/platform/database"
	"clinic_backend/internal/platform/logger"
	"clinic_backend/internal/shared"
	"clinic_backend/internal/user"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewMongo,
		// provideCleanup,

		// Cross-cutting Services
		auth.NewJWTService,
		wire.Bind(new(shared.TokenService), new(*auth.JWTService)),
		auth.NewGoogleVerifier,
		email.NewGomailSender,
		wire.Bind(new(email.Sender), new(*email.GomailSender)),
		filestorage.NewCloudinaryService,

		// Identity
		user.NewMongoRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,
		auth.NewService,
		auth.NewHandler,

		// Domain Modules
		doctor.NewMongoRepository,
		doctor.NewService,
		wire.Bind(new(doctor.Service), new(*doctor.ServiceImplementation)),
		doctor.NewHandler,
		appointment.NewRepository,
		appointment.NewService,
		wire.Bind(new(appointment.Service), new(*appointment.ServiceImplementation)),
		appointment.NewHandler,
		contact.NewRepository,
		contact.NewService,
		wire.Bind(new(contact.Service), new(*contact.ServiceImplementation)),
		contact.NewHandler,
		jobs.NewAppointmentReminderJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *mongo.Database) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseMongo(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
