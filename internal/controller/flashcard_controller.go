package controller

import (
	"errors"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FlashcardController struct {
	FlashcardService *service.FlashcardService
}

func NewFlashcardController(flashcardService *service.FlashcardService) *FlashcardController {
	return &FlashcardController{FlashcardService: flashcardService}
}

// GetByTopic godoc
// @Summary 主题下的记忆卡
// @Tags 记忆卡
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "主题ID"
// @Success 200 {object} util.Response{data=[]model.Flashcard} "成功"
// @Router /api/topics/{id}/flashcards [get]
func (c *FlashcardController) GetByTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	cards, err := c.FlashcardService.GetByTopic(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondTopicError(ctx, err)
		return
	}

	util.Success(ctx, cards)
}

// Review godoc
// @Summary 复习一张记忆卡
// @Description 复习计数 +1，可同时标记掌握状态；发放 XP 并推进连续学习天数
// @Tags 记忆卡
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "卡片ID"
// @Param   body body service.ReviewFlashcardRequest false "掌握状态"
// @Success 200 {object} util.Response{data=service.ReviewResult} "成功"
// @Router /api/flashcards/{id}/review [post]
func (c *FlashcardController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ReviewFlashcardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.FlashcardService.Review(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
