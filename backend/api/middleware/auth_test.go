package middleware

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthmate/backend/common"
	"healthmate/backend/model"
	"healthmate/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "test-jwt-secret-for-middleware-tests"
	common.JWTRefreshSecret = "test-jwt-refresh-secret-for-middleware-tests"
	common.RedisEnabled = false
}

func setupTestRouter() *gin.Engine {
	router := gin.New()
	return router
}

func protectedRouter() *gin.Engine {
	router := setupTestRouter()
	router.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user_id": CurrentUserID(c),
			"email":   c.GetString(CtxEmail),
		})
	})
	return router
}

func TestJWTAuth_NoAuthorizationHeader(t *testing.T) {
	req, _ := http.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	protectedRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuth_InvalidFormat(t *testing.T) {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")
	resp := httptest.NewRecorder()
	protectedRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Bearer")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-token")
	resp := httptest.NewRecorder()
	protectedRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	refreshToken, err := service.GenerateRefreshToken(&model.User{ID: "u-1", Email: "a@example.com"})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	resp := httptest.NewRecorder()
	protectedRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := service.GenerateToken(&model.User{ID: "u-42", Email: "patient@example.com", Role: common.RoleCommonUser})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	protectedRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "u-42")
	assert.Contains(t, resp.Body.String(), "patient@example.com")
}

func TestJWTAuth_LowercaseBearer(t *testing.T) {
	token, err := service.GenerateToken(&model.User{ID: "u-7", Email: "x@example.com"})
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp := httptest.NewRecorder()
	protectedRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.GET("/limited", rateLimitFactory(2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req, _ := http.NewRequest("GET", "/limited", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequestId(t *testing.T) {
	router := setupTestRouter()
	router.GET("/ping", RequestId(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIdKey))
	})

	req, _ := http.NewRequest("GET", "/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	generated := resp.Header().Get(RequestIdKey)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, resp.Body.String())

	req, _ = http.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIdKey, "client-supplied")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, "client-supplied", resp.Header().Get(RequestIdKey))
}

func TestBodyLimit(t *testing.T) {
	router := setupTestRouter()
	router.POST("/upload", BodyLimit(10), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	body := strings.NewReader(strings.Repeat("x", multipartOverhead+100))
	req, _ := http.NewRequest("POST", "/upload", body)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	req, _ = http.NewRequest("POST", "/upload", strings.NewReader("small"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestGzipEncodeMiddleware(t *testing.T) {
	router := setupTestRouter()
	router.Use(GzipEncodeMiddleware())
	router.GET("/data", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Repeat("healthmate ", 50))
	})

	req, _ := http.NewRequest("GET", "/data", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, "gzip", resp.Header().Get("Content-Encoding"))
	gr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	data, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("healthmate ", 50), string(data))
}

func TestJSONBodyLimit_GzipBody(t *testing.T) {
	router := setupTestRouter()
	router.Use(GzipDecodeMiddleware())
	router.POST("/login", JSONBodyLimit(1024), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	// 压缩后很小，解压后远超限制
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	_, err := gz.Write(bytes.Repeat([]byte(" "), 1<<19))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.Less(t, compressed.Len(), 1024)

	req, _ := http.NewRequest("POST", "/login", bytes.NewReader(compressed.Bytes()))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	req, _ = http.NewRequest("POST", "/login", strings.NewReader(strings.Repeat("x", 2048)))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	req, _ = http.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@example.com"}`))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}
