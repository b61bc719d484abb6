package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	attendance_usecases "clockedin.io/application/usecases/attendance"
	"clockedin.io/entities"
	"clockedin.io/infrastructure/logger"
	mq_types "clockedin.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

var HandleAttendanceReplayTaskName mq_types.Queues = "submit_attendance"

// AttendanceReplayPayload is the exact admission payload, preserved verbatim
// so a replay produces the same result as a direct submission would have.
type AttendanceReplayPayload struct {
	UserID         string                    `json:"user_id"`
	Kind           string                    `json:"kind"`
	Embedding      []float64                 `json:"embedding,omitempty"`
	Code           *string                   `json:"code,omitempty"`
	Location       entities.LocationSnapshot `json:"location"`
	Network        entities.NetworkSnapshot  `json:"network"`
	IdempotencyKey string                    `json:"idempotency_key"`
}

// HandleAttendanceReplayTask resubmits a deferred admission through the same
// service contract. Policy rejections are final - retrying them cannot change
// the answer - so only storage/config errors are returned to asynq for retry.
func HandleAttendanceReplayTask(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceReplayPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling attendance replay payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	key := payload.IdempotencyKey
	outcome, err := attendance_usecases.Instance().Verify(ctx, attendance_usecases.VerifyParams{
		UserID:         payload.UserID,
		Kind:           payload.Kind,
		Embedding:      payload.Embedding,
		Code:           payload.Code,
		Location:       payload.Location,
		Network:        payload.Network,
		IdempotencyKey: &key,
	})
	if err != nil {
		logger.Error("attendance replay attempt failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "idempotencyKey",
			Data: payload.IdempotencyKey,
		})
		return fmt.Errorf("attendance replay failed for %s", payload.UserID)
	}

	if !outcome.Success {
		logger.Warning("replayed attendance was rejected by policy", logger.LoggerOptions{
			Key:  "tag",
			Data: outcome.Tag,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		})
	}
	return nil
}
