package controller

import (
	"encoding/base64"
	"errors"
	"io"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// UploadContent godoc
// @Summary 上传学习内容（JSON）
// @Description 文本或 base64 图片二选一，AI 生成摘要、20 张卡片与 30 道题
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.UploadContentRequest true "上传内容"
// @Success 201 {object} util.Response{data=model.ContentUpload} "创建成功"
// @Failure 400 {object} util.Response "无可处理的文本"
// @Failure 402 {object} util.Response "AI 配额耗尽或超出本周上传额度"
// @Failure 429 {object} util.Response "AI 限流"
// @Failure 503 {object} util.Response "AI 服务未配置"
// @Router /api/content/upload [post]
func (c *ContentController) UploadContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UploadContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	upload, err := c.ContentService.UploadContent(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}

	util.Created(ctx, upload)
}

// UploadFile godoc
// @Summary 上传学习内容（文件）
// @Description multipart 文件上传，图片走 OCR，文本文件直接读取
// @Tags 内容
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   topicId formData string true "主题ID"
// @Param   file formData file true "学习材料文件"
// @Success 201 {object} util.Response{data=model.ContentUpload} "创建成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/content/upload/file [post]
func (c *ContentController) UploadFile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topicID := ctx.PostForm("topicId")
	if topicID == "" {
		util.BadRequest(ctx, "topicId is required")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	f, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	mimeType, err := util.ValidateMimeType(f, []string{util.MimeImage, util.MimeText, util.MimePDF})
	if err != nil {
		f.Close()
		util.BadRequest(ctx, err.Error())
		return
	}

	// 重新打开读完整内容
	f.Close()
	f, err = header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	content := ""
	imageBase64 := ""
	if util.IsImage(mimeType) {
		imageBase64 = base64.StdEncoding.EncodeToString(data)
	} else {
		content = string(data)
	}

	upload, err := c.ContentService.UploadFile(ctx.Request.Context(), claims.UserID, topicID, header, content, imageBase64, mimeType)
	if err != nil {
		respondContentError(ctx, err)
		return
	}

	util.Created(ctx, upload)
}

// GetUploads godoc
// @Summary 上传记录列表
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ContentUpload} "成功"
// @Router /api/content/uploads [get]
func (c *ContentController) GetUploads(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	uploads, err := c.ContentService.GetUploads(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, uploads)
}

// Regenerate godoc
// @Summary 重新生成学习材料
// @Description 用该主题最近一次上传的原文重建卡片与题目，免费版每周一次
// @Tags 内容
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "主题ID"
// @Success 200 {object} util.Response{data=model.ContentUpload} "成功"
// @Failure 402 {object} util.Response "超出本周再生成额度"
// @Failure 404 {object} util.Response "该主题没有可用的上传内容"
// @Router /api/topics/{id}/regenerate [post]
func (c *ContentController) Regenerate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	upload, err := c.ContentService.Regenerate(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondContentError(ctx, err)
		return
	}

	util.Success(ctx, upload)
}

// respondContentError AI 与额度错误按约定映射状态码
func respondContentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAIMissingKey):
		util.Error(ctx, 503, err.Error())
	case errors.Is(err, service.ErrAIRateLimit):
		util.Error(ctx, 429, err.Error())
	case errors.Is(err, service.ErrAIQuota):
		util.Error(ctx, 402, err.Error())
	case errors.Is(err, service.ErrAINoInput):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUploadLimitReached),
		errors.Is(err, util.ErrRegenerateLimit):
		util.Error(ctx, 402, err.Error())
	case errors.Is(err, util.ErrNoUploadForTopic),
		errors.Is(err, util.ErrNoExtractedText),
		errors.Is(err, util.ErrTopicNotFound):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
