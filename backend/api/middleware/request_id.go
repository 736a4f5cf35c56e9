package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIdKey = "X-Request-Id"

func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdKey)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIdKey, id)
		c.Header(RequestIdKey, id)
		c.Next()
	}
}
