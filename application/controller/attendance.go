package controller

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/application/constants"
	"clockedin.io/application/controller/dto"
	"clockedin.io/application/interfaces"
	attendance_usecases "clockedin.io/application/usecases/attendance"
	"clockedin.io/entities"
	"clockedin.io/infrastructure/logger"
	messagequeue "clockedin.io/infrastructure/message_queue"
	queue_tasks "clockedin.io/infrastructure/message_queue/tasks"
	mq_types "clockedin.io/infrastructure/message_queue/types"
	server_response "clockedin.io/infrastructure/serverResponse"
	"clockedin.io/infrastructure/validator"
	"github.com/google/uuid"
)

var admissionRejectionMessages = map[constants.OutcomeTag]string{
	constants.LocationInvalid:   "you are outside the permitted check-in area",
	constants.WifiInvalid:       "connect to an approved workplace network and try again",
	constants.FaceMismatch:      "face verification failed. try again in better lighting.",
	constants.NoFaceProfile:     "no face profile enrolled for this account",
	constants.EmbeddingMismatch: "your app is out of date with the enrolled face model. re-enroll your face.",
	constants.InvalidCode:       "that code is invalid or has expired",
	constants.NoActiveSession:   "there is no open session to check out of",
	constants.MissingProof:      "a face scan or rotating code is required",
}

// VerifyAttendance is the single admission endpoint for both check-in and
// check-out. Storage failures do not bounce the caller: the submission is
// parked on the replay queue under its idempotency key and acknowledged with
// 202.
func VerifyAttendance(ctx *interfaces.ApplicationContext[dto.VerifyAttendanceDTO]) {
	valiErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body)
	if valiErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiErr)
		return
	}
	if err := ctx.Body.Validate(); err != nil {
		apperrors.ValidationFailedError(ctx.Ctx, &[]error{err})
		return
	}
	if ctx.GetStringContextData("UserID") != ctx.Body.UserID {
		apperrors.IdentityMismatchError(ctx.Ctx)
		return
	}

	// Every submission gets an idempotency key before it can fail, so a later
	// replay of this exact request resolves to one record.
	idempotencyKey := ctx.Body.IdempotencyKey
	if idempotencyKey == nil || *idempotencyKey == "" {
		generated := uuid.NewString()
		idempotencyKey = &generated
	}

	params := attendance_usecases.VerifyParams{
		UserID:    ctx.Body.UserID,
		Kind:      ctx.Body.Type,
		Embedding: ctx.Body.FaceEmbedding,
		Code:      ctx.Body.Code,
		Location: entities.LocationSnapshot{
			Latitude:  ctx.Body.Location.Lat,
			Longitude: ctx.Body.Location.Lng,
		},
		Network: entities.NetworkSnapshot{
			SSID:  ctx.Body.Network.SSID,
			BSSID: ctx.Body.Network.BSSID,
		},
		IdempotencyKey: idempotencyKey,
	}

	outcome, err := attendance_usecases.Instance().Verify(requestContext(ctx.Ctx), params)
	if err != nil {
		if err == attendance_usecases.ErrPolicyNotConfigured {
			apperrors.ConfigurationError(ctx.Ctx, err)
			return
		}
		deferToReplayQueue(ctx, params, *idempotencyKey, err)
		return
	}

	if !outcome.Success {
		message, known := admissionRejectionMessages[outcome.Tag]
		if !known {
			message = "attendance could not be recorded. please try again."
		}
		apperrors.AdmissionRejectedError(ctx.Ctx, outcome.Tag, message, outcome)
		return
	}

	message := "checked in"
	if ctx.Body.Type == constants.CheckOut {
		message = "checked out"
	}
	var responseCode *uint
	if outcome.DuplicateOpenSession {
		responseCode = &constants.DUPLICATE_OPEN_SESSION
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, message, outcome, nil, responseCode)
}

func deferToReplayQueue(ctx *interfaces.ApplicationContext[dto.VerifyAttendanceDTO], params attendance_usecases.VerifyParams, idempotencyKey string, cause error) {
	logger.Error("attendance submission deferred to replay queue", logger.LoggerOptions{
		Key:  "error",
		Data: cause,
	}, logger.LoggerOptions{
		Key:  "idempotencyKey",
		Data: idempotencyKey,
	})
	payload, err := json.Marshal(queue_tasks.AttendanceReplayPayload{
		UserID:         params.UserID,
		Kind:           params.Kind,
		Embedding:      params.Embedding,
		Code:           params.Code,
		Location:       params.Location,
		Network:        params.Network,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:      queue_tasks.HandleAttendanceReplayTaskName,
		Payload:   payload,
		Priority:  mq_types.High,
		ProcessIn: 30,
		MaxRetry:  10,
		TimeOut:   60,
	})
	server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted,
		"submission accepted and queued. it will be recorded shortly.", map[string]any{
			"idempotency_key": idempotencyKey,
		}, nil, &constants.ATTENDANCE_QUEUED)
}

// requestContext unwraps the transport context when it carries cancellation,
// so downstream mongo calls stop when the caller disconnects.
func requestContext(transport interface{}) context.Context {
	if ctx, ok := transport.(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// AttendanceHistory lists the caller's records, newest first.
func AttendanceHistory(ctx *interfaces.ApplicationContext[any]) {
	limit, _ := ctx.GetContextData("Limit").(int64)
	records, err := attendance_usecases.Instance().History(requestContext(ctx.Ctx), ctx.GetStringContextData("UserID"), limit)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance history", records, nil, nil)
}
