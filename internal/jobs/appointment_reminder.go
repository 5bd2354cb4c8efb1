// File: internal/jobs/appointment_reminder.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"clinic_backend/internal/appointment"
	"clinic_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AppointmentReminderJob holds dependencies for the reminder job.
type AppointmentReminderJob struct {
	appointmentService appointment.Service
	logger             *zap.Logger
	cfg                *config.Config
	cronScheduler      *cron.Cron
}

// NewAppointmentReminderJob creates a new AppointmentReminderJob.
func NewAppointmentReminderJob(
	appointmentService appointment.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *AppointmentReminderJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &AppointmentReminderJob{
		appointmentService: appointmentService,
		logger:             logger.Named("AppointmentReminderJob"),
		cfg:                cfg,
		cronScheduler:      scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *AppointmentReminderJob) SetupAndStart() error {
	jobSpec := j.cfg.ReminderJobSchedule // e.g., "@daily", "0 7 * * *"
	if jobSpec == "" {
		j.logger.Warn("Reminder job schedule not defined (APPOINTMENT_REMINDER_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule appointment reminder job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Appointment reminder job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob mails reminders for every appointment happening tomorrow.
func (j *AppointmentReminderJob) runJob() {
	j.logger.Info("Starting appointment reminder job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	from := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	if err := j.appointmentService.SendReminders(ctx, from, to); err != nil {
		j.logger.Error("Appointment reminder job run failed", zap.Error(err))
	} else {
		j.logger.Info("Appointment reminder job run completed")
	}
}

// Stop gracefully stops the cron scheduler.
func (j *AppointmentReminderJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping appointment reminder job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Appointment reminder job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Appointment reminder job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
