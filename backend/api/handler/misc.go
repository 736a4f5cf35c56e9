package handler

import (
	"net/http"

	"healthmate/backend/api/middleware"
	"healthmate/backend/common"
	"healthmate/backend/library/storage"
	"healthmate/backend/model"

	"github.com/gin-gonic/gin"
)

func GetRoot(c *gin.Context) {
	c.String(http.StatusOK, "HealthMate backend is running!")
}

func GetStatus(c *gin.Context) {
	status := gin.H{
		"version":    common.Version,
		"redis":      common.RedisEnabled,
		"ai_enabled": common.AIEndpoint != "",
	}
	if model.Repo != nil {
		status["database"] = model.Repo.Backend()
	}
	if storage.Default != nil {
		status["storage"] = storage.Default.Name()
	}
	common.RespSuccess(c, status)
}

// GetProtected is a smoke-test endpoint for clients checking their token.
func GetProtected(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Access granted to protected route",
		"user_id": middleware.CurrentUserID(c),
	})
}

func NotFound(c *gin.Context) {
	common.RespErrorStr(c, http.StatusNotFound, "Route not found")
}
