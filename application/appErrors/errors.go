package apperrors

import (
	"net/http"

	"clockedin.io/application/constants"
	"clockedin.io/infrastructure/logger"
	server_response "clockedin.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "payload validation failed", nil, *errMessages, nil)
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil, &constants.SESSION_EXPIRED)
}

func IdentityMismatchError(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusForbidden, "you cannot submit attendance for another identity", nil, nil, &constants.IDENTITY_MISMATCH)
}

// AdmissionRejectedError renders a policy rejection. The tag is the contract;
// the message is advisory display copy.
func AdmissionRejectedError(ctx interface{}, tag constants.OutcomeTag, message string, payload interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, message, map[string]any{
		"success": false,
		"tag":     tag,
		"details": payload,
	}, nil, nil)
}

func ConfigurationError(ctx interface{}, err error) {
	logger.Error("admission policy misconfigured - operator action required", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError, "service misconfigured. contact your administrator.", map[string]any{
		"success": false,
		"tag":     constants.ConfigError,
	}, nil, &constants.POLICY_NOT_CONFIGURED)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "abnormal payload passed", nil, nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"our service is temporarily down. our team is working to fix it. please check back later.", nil, nil, nil)
}

func UnknownError(ctx interface{}, err error) {
	logger.Error("unknown error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusBadRequest,
		"something went wrong somewhere. please check back later.", nil, nil, nil)
}
