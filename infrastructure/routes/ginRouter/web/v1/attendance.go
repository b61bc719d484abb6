package routev1

import (
	"strconv"

	apperrors "clockedin.io/application/appErrors"
	"clockedin.io/application/controller"
	"clockedin.io/application/controller/dto"
	"clockedin.io/application/interfaces"
	middlewares "clockedin.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func AttendanceRouter(router *gin.RouterGroup) {
	attendanceRouter := router.Group("/attendance")
	{
		attendanceRouter.POST("/verify", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			var body dto.VerifyAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyAttendance(&interfaces.ApplicationContext[dto.VerifyAttendanceDTO]{
				Ctx:    ctx,
				Body:   &body,
				Keys:   ctx.Keys,
				Header: ctx.Request.Header,
			})
		})

		attendanceRouter.GET("/", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			limit, _ := strconv.ParseInt(ctx.Query("limit"), 10, 64)
			appContext := interfaces.ApplicationContext[any]{
				Ctx:    ctx,
				Keys:   ctx.Keys,
				Header: ctx.Request.Header,
			}
			appContext.SetContextData("Limit", limit)
			controller.AttendanceHistory(&appContext)
		})
	}
}
