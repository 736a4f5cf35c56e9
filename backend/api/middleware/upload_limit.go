package middleware

import (
	"net/http"

	"healthmate/backend/common"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and part headers on top of the
// file itself.
const multipartOverhead = 1 << 20

// BodyLimit caps the request body; reads past the limit fail and the handler
// answers 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes+multipartOverhead {
			common.AbortWithError(c, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)
		c.Next()
	}
}

// JSONBodyLimit caps small JSON bodies. The limit applies after gzip
// decoding, so a compressed body cannot expand past it.
func JSONBodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			common.AbortWithError(c, http.StatusRequestEntityTooLarge, "Request body is too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
