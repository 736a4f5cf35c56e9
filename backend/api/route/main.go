package route

import (
	"healthmate/backend/api/handler"
	"healthmate/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetRouter(route *gin.Engine) {
	route.Use(middleware.RequestId())
	route.Use(middleware.CORS())
	route.Use(middleware.GzipDecodeMiddleware())
	route.Use(middleware.GzipEncodeMiddleware())

	setWebRouter(route)
	SetApiRouter(route)

	route.NoRoute(handler.NotFound)
}
