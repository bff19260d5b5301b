package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"skillboard/internal/events"
	"skillboard/internal/history"
	historyerrors "skillboard/internal/history/errors"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TaskCounter is the slice of the employee service the consumer needs.
type TaskCounter interface {
	IncrementTasksCompleted(ctx context.Context, email string) error
}

// ConsumeTaskLifecycle turns task_completed messages into system history
// entries and keeps the per-employee completion counter in step. A
// redelivered message hits the history unique index and is committed
// without incrementing again.
func ConsumeTaskLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	historyService history.Service,
	counter TaskCounter,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.task_lifecycle")
	log.Info("task lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("task lifecycle consumer stopped")
				return
			}
			log.Error("fetch task lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.TaskCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode task_completed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		taskID, err := uuid.Parse(event.TaskID)
		if err != nil {
			log.Error("task_completed event carries invalid task id",
				zap.String("task_id", event.TaskID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = historyService.CreateFromTask(ctx, history.SystemEntryInput{
			TaskID:        taskID,
			EmployeeEmail: event.EmployeeEmail,
			TaskTitle:     event.TaskTitle,
			Description:   event.Description,
			Notes:         event.Notes,
			CompletedAt:   event.CompletedAt,
		})
		if err != nil {
			if errors.Is(err, historyerrors.ErrDuplicateSystemEntry) {
				log.Warn("task completion already recorded, skipping",
					zap.String("task_id", event.TaskID),
					zap.String("employee_email", event.EmployeeEmail),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record task completion failed",
				zap.String("task_id", event.TaskID),
				zap.String("employee_email", event.EmployeeEmail),
				zap.Error(err),
			)
			continue
		}

		if err := counter.IncrementTasksCompleted(ctx, event.EmployeeEmail); err != nil {
			log.Error("increment tasks completed failed",
				zap.String("employee_email", event.EmployeeEmail),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit task lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("task completion recorded",
			zap.String("task_id", event.TaskID),
			zap.String("employee_email", event.EmployeeEmail),
		)
	}
}
