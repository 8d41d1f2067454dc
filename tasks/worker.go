package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookingadmin/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitMailWorker starts the asynq server that delivers queued emails and returns it so the
// caller can shut it down.
func InitMailWorker(cfg *config.Config, mailer Mailer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCalendarInvite, HandleCalendarInvite(mailer, logger))

	go func() {
		logger.Info("Starting mail worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Mail worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Mail worker gave up; calendar invitations will stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleCalendarInvite sends the email described by the task payload. A malformed payload
// is not retried.
func HandleCalendarInvite(mailer Mailer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p CalendarInvitePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid calendar invite payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.Email == "" {
			return fmt.Errorf("employee %s has no email: %w", p.EmployeeID, asynq.SkipRetry)
		}

		if err := mailer.Send(p.Email, p.Subject, p.Body); err != nil {
			logger.Warn("Calendar invite delivery failed", zap.String("employeeId", p.EmployeeID), zap.Error(err))
			return err
		}
		logger.Info("Calendar invite sent", zap.String("employeeId", p.EmployeeID), zap.String("email", p.Email))
		return nil
	}
}
