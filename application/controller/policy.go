package controller

import (
	"net/http"

	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/application/controller/dto"
	"clockedin.io/application/interfaces"
	"clockedin.io/application/repository"
	"clockedin.io/entities"
	server_response "clockedin.io/infrastructure/serverResponse"
	"clockedin.io/infrastructure/validator"
)

func redactPolicy(policy *entities.AdmissionPolicy) map[string]any {
	return map[string]any{
		"office":          policy.Office,
		"radius_meters":   policy.RadiusMeters,
		"wifi_allow_list": policy.WifiAllowList,
		"has_code_secret": policy.CodeSecretEncrypted != nil && *policy.CodeSecretEncrypted != "",
	}
}

// FetchPolicy returns the active admission policy with the rotating-code
// secret redacted. The secret is write-only.
func FetchPolicy(ctx *interfaces.ApplicationContext[any]) {
	policy, _, err := repository.PolicyRepo().Load(requestContext(ctx.Ctx))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if policy == nil {
		apperrors.NotFoundError(ctx.Ctx, "no admission policy has been configured")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "admission policy", redactPolicy(policy), nil, nil)
}

// UpdatePolicy replaces the admission policy. Changes apply within the policy
// cache window without a restart.
func UpdatePolicy(ctx *interfaces.ApplicationContext[dto.UpdatePolicyDTO]) {
	valiErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body)
	if valiErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiErr)
		return
	}

	policy := entities.AdmissionPolicy{
		RadiusMeters:  ctx.Body.RadiusMeters,
		WifiAllowList: ctx.Body.WifiAllowList,
	}
	if ctx.Body.Office != nil {
		policy.Office = &entities.OfficeCoordinate{
			Latitude:  ctx.Body.Office.Lat,
			Longitude: ctx.Body.Office.Lng,
		}
	}

	saved, err := repository.PolicyRepo().Replace(requestContext(ctx.Ctx), policy, ctx.Body.CodeSecret)
	if err != nil {
		apperrors.ValidationFailedError(ctx.Ctx, &[]error{err})
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "admission policy updated", redactPolicy(saved), nil, nil)
}
