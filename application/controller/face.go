package controller

import (
	"net/http"

	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/application/controller/dto"
	"clockedin.io/application/interfaces"
	attendance_usecases "clockedin.io/application/usecases/attendance"
	"clockedin.io/entities"
	server_response "clockedin.io/infrastructure/serverResponse"
	"clockedin.io/infrastructure/validator"
)

// EnrollFace appends poses to the authenticated identity's face profile.
func EnrollFace(ctx *interfaces.ApplicationContext[dto.EnrollFaceDTO]) {
	valiErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body)
	if valiErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiErr)
		return
	}
	if err := ctx.Body.Validate(); err != nil {
		apperrors.ValidationFailedError(ctx.Ctx, &[]error{err})
		return
	}

	poses := make([]entities.PoseEmbedding, len(ctx.Body.Poses))
	for i, pose := range ctx.Body.Poses {
		poses[i] = entities.PoseEmbedding{
			Label:  pose.Label,
			Vector: pose.Embedding,
		}
	}

	profile, err := attendance_usecases.Instance().EnrollPoses(requestContext(ctx.Ctx), ctx.GetStringContextData("UserID"), poses)
	if err == attendance_usecases.ErrPoseDimensionMismatch || err == attendance_usecases.ErrEmptyPose {
		apperrors.ValidationFailedError(ctx.Ctx, &[]error{err})
		return
	}
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "face profile updated", dto.FaceStatusResponse{
		IsRegistered: true,
		PoseCount:    len(profile.Poses),
	}, nil, nil)
}

// FaceStatus tells the capture flow whether enrollment is still needed.
func FaceStatus(ctx *interfaces.ApplicationContext[any]) {
	count, err := attendance_usecases.Instance().ProfileStatus(requestContext(ctx.Ctx), ctx.GetStringContextData("UserID"))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face profile status", dto.FaceStatusResponse{
		IsRegistered: count > 0,
		PoseCount:    count,
	}, nil, nil)
}
