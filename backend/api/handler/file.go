package handler

import (
	"errors"
	"net/http"

	"healthmate/backend/api/middleware"
	"healthmate/backend/common"
	"healthmate/backend/service"

	"github.com/gin-gonic/gin"
)

// UploadFile handles POST /api/files/upload with a multipart "file" field.
func UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			common.RespErrorStr(c, http.StatusRequestEntityTooLarge, service.ErrFileTooLarge.Error())
			return
		}
		common.SysError("no file received in request", "err", err)
		common.RespErrorStr(c, http.StatusBadRequest, service.ErrNoFile.Error())
		return
	}

	file, err := service.UploadFile(c.Request.Context(), middleware.CurrentUserID(c), header)
	if err != nil {
		respFileError(c, "Server error during upload", err)
		return
	}
	common.RespSuccessWithMsg(c, "File uploaded successfully", file)
}

// GetFiles lists the caller's files, newest first.
func GetFiles(c *gin.Context) {
	files, err := service.ListFiles(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		common.SysError("error fetching files", "err", err)
		common.RespError(c, http.StatusInternalServerError, "Server error", err)
		return
	}
	common.RespSuccess(c, files)
}

func GetFile(c *gin.Context) {
	file, err := service.GetFile(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respFileError(c, "Server error", err)
		return
	}
	common.RespSuccess(c, file)
}

// respFileError maps service errors to status codes; anything unrecognised
// is a 500 carrying the underlying message.
func respFileError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNoFile), errors.Is(err, service.ErrUnsupportedType):
		common.RespErrorStr(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFileTooLarge):
		common.RespErrorStr(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrFileNotFound):
		common.RespErrorStr(c, http.StatusNotFound, err.Error())
	default:
		common.SysError(msg, "err", err)
		common.RespError(c, http.StatusInternalServerError, msg, err)
	}
}
