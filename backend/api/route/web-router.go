package route

import (
	"healthmate/backend/api/handler"
	"healthmate/backend/library/storage"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// setWebRouter serves the health check and, when uploads are kept on local
// disk, the uploaded files themselves.
func setWebRouter(route *gin.Engine) {
	route.GET("/", handler.GetRoot)
	if local, ok := storage.Default.(*storage.LocalStorage); ok {
		route.Use(static.Serve("/upload", static.LocalFile(local.Dir(), false)))
	}
}
