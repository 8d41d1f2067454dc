package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookingadmin/config"

	"github.com/hibiken/asynq"
)

const TypeCalendarInvite = "calendar:invite-email"

// CalendarInvitePayload carries a ready-to-send calendar authorization email.
type CalendarInvitePayload struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// Enqueuer schedules background jobs.
type Enqueuer interface {
	EnqueueCalendarInvite(ctx context.Context, p CalendarInvitePayload) error
}

// AsynqEnqueuer pushes tasks to the Redis queue database.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

func NewEnqueuer(cfg *config.Config) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: asynq.NewClient(redisOpt(cfg))}
}

func (e *AsynqEnqueuer) EnqueueCalendarInvite(ctx context.Context, p CalendarInvitePayload) error {
	task, err := NewCalendarInviteTask(p)
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TypeCalendarInvite, err)
	}
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}

// NewCalendarInviteTask encodes p; delivery is retried up to five times.
func NewCalendarInviteTask(p CalendarInvitePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode invite payload: %w", err)
	}
	return asynq.NewTask(TypeCalendarInvite, payload, asynq.MaxRetry(5), asynq.Timeout(time.Minute)), nil
}
