package handler

import (
	"errors"
	"net/http"

	"healthmate/backend/api/middleware"
	"healthmate/backend/common"
	"healthmate/backend/service"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into obj and answers 413 or 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.RespErrorStr(c, http.StatusRequestEntityTooLarge, "Request body is too large")
			return false
		}
		common.RespError(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := common.Validate.Struct(&req); err != nil {
		common.RespError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	user, err := service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			common.RespErrorStr(c, http.StatusConflict, err.Error())
			return
		}
		common.SysError("register failed", "err", err)
		common.RespError(c, http.StatusInternalServerError, "Server error during registration", err)
		return
	}
	common.RespSuccessWithMsg(c, "User registered successfully", user)
}

func Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := common.Validate.Struct(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := service.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserDisabled):
			common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
		default:
			common.SysError("login failed", "err", err)
			common.RespError(c, http.StatusInternalServerError, "Server error during login", err)
		}
		return
	}
	common.RespSuccessWithMsg(c, "Login successful", result)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func RefreshToken(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := common.Validate.Struct(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "refresh_token is required")
		return
	}
	token, err := service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrUserDisabled) {
			common.RespErrorStr(c, http.StatusUnauthorized, err.Error())
			return
		}
		common.SysError("refresh token failed", "err", err)
		common.RespError(c, http.StatusInternalServerError, "Server error during token refresh", err)
		return
	}
	common.RespSuccess(c, gin.H{"token": token})
}

func Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		common.RespErrorStr(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if err := service.Logout(c.Request.Context(), c.GetString(middleware.CtxToken), claims); err != nil {
		common.RespError(c, http.StatusInternalServerError, "Failed to logout", err)
		return
	}
	common.RespSuccessStr(c, "Logged out")
}

func GetSelf(c *gin.Context) {
	user, err := service.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, err.Error())
			return
		}
		common.RespError(c, http.StatusInternalServerError, "Failed to get user", err)
		return
	}
	common.RespSuccess(c, user)
}
