package route

import (
	"healthmate/backend/api/handler"
	"healthmate/backend/api/middleware"
	"healthmate/backend/common"

	"github.com/gin-gonic/gin"
)

// authBodyLimit bounds credential payloads.
const authBodyLimit = int64(16 << 10)

func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		authRoute := apiRouter.Group("/auth")
		authRoute.Use(middleware.JSONBodyLimit(authBodyLimit))
		{
			authRoute.POST("/register", middleware.CriticalRateLimit(), handler.Register)
			authRoute.POST("/login", middleware.CriticalRateLimit(), handler.Login)
			authRoute.POST("/refresh", middleware.CriticalRateLimit(), handler.RefreshToken)
			authRoute.POST("/logout", middleware.JWTAuth(), handler.Logout)
			authRoute.GET("/me", middleware.JWTAuth(), handler.GetSelf)
		}

		apiRouter.GET("/protected", middleware.JWTAuth(), handler.GetProtected)

		fileRoute := apiRouter.Group("/files")
		fileRoute.Use(middleware.JWTAuth())
		{
			fileRoute.POST("/upload", middleware.BodyLimit(common.MaxUploadSize), handler.UploadFile)
			fileRoute.GET("", handler.GetFiles)
			fileRoute.GET("/:id", handler.GetFile)
		}

		aiRoute := apiRouter.Group("/ai")
		aiRoute.Use(middleware.JWTAuth())
		{
			aiRoute.POST("/analyze/:fileId", handler.AnalyzeFile)
			aiRoute.GET("/analyses/:fileId", handler.GetAnalyses)
			aiRoute.GET("/analyses/:fileId/latest", handler.GetLatestAnalysis)
		}
	}
}
