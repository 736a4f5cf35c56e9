package handler

import (
	"healthmate/backend/api/middleware"
	"healthmate/backend/common"
	"healthmate/backend/service"

	"github.com/gin-gonic/gin"
)

// AnalyzeFile handles POST /api/ai/analyze/:fileId.
func AnalyzeFile(c *gin.Context) {
	analysis, err := service.AnalyzeFile(c.Request.Context(), middleware.CurrentUserID(c), c.Param("fileId"))
	if err != nil {
		respFileError(c, "Server error during analysis", err)
		return
	}
	common.RespSuccessWithMsg(c, "Analysis completed", analysis)
}

func GetAnalyses(c *gin.Context) {
	analyses, err := service.ListAnalyses(c.Request.Context(), middleware.CurrentUserID(c), c.Param("fileId"))
	if err != nil {
		respFileError(c, "Server error", err)
		return
	}
	common.RespSuccess(c, analyses)
}

func GetLatestAnalysis(c *gin.Context) {
	analysis, err := service.LatestAnalysis(c.Request.Context(), middleware.CurrentUserID(c), c.Param("fileId"))
	if err != nil {
		respFileError(c, "Server error", err)
		return
	}
	if analysis == nil {
		common.RespSuccessStr(c, "No analysis yet")
		return
	}
	common.RespSuccess(c, analysis)
}
