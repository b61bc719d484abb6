package routev1

import (
	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/application/controller"
	"clockedin.io/application/controller/dto"
	"clockedin.io/application/interfaces"
	middlewares "clockedin.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func PolicyRouter(router *gin.RouterGroup) {
	policyRouter := router.Group("/policy")
	{
		policyRouter.GET("/", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			controller.FetchPolicy(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				Keys:   ctx.Keys,
				Header: ctx.Request.Header,
			})
		})

		policyRouter.PUT("/", middlewares.AdminAuthenticationMiddleware(), func(ctx *gin.Context) {
			var body dto.UpdatePolicyDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdatePolicy(&interfaces.ApplicationContext[dto.UpdatePolicyDTO]{
				Ctx:    ctx,
				Body:   &body,
				Keys:   ctx.Keys,
				Header: ctx.Request.Header,
			})
		})
	}
}
