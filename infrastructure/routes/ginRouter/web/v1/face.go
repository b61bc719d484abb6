package routev1

import (
	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/application/controller"
	"clockedin.io/application/controller/dto"
	"clockedin.io/application/interfaces"
	middlewares "clockedin.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func FaceRouter(router *gin.RouterGroup) {
	faceRouter := router.Group("/faces")
	{
		faceRouter.POST("/", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			var body dto.EnrollFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollFace(&interfaces.ApplicationContext[dto.EnrollFaceDTO]{
				Ctx:    ctx,
				Body:   &body,
				Keys:   ctx.Keys,
				Header: ctx.Request.Header,
			})
		})

		faceRouter.GET("/status", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			controller.FaceStatus(&interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				Keys:   ctx.Keys,
				Header: ctx.Request.Header,
			})
		})
	}
}
