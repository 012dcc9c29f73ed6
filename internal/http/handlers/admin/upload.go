package admin

import (
	"github.com/kickslife/storefront/internal/constants"
	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 文件上传
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_file_required", nil)
		return
	}
	scene := c.DefaultPostForm("scene", constants.UploadSceneCommon)

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.UploadErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
