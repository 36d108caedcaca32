package controller

import (
	"errors"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GetByTopic godoc
// @Summary 主题下的练习题
// @Tags 练习题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "主题ID"
// @Success 200 {object} util.Response{data=[]model.Question} "成功"
// @Router /api/topics/{id}/questions [get]
func (c *QuestionController) GetByTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	questions, err := c.QuestionService.GetByTopic(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondTopicError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// Answer godoc
// @Summary 提交答案
// @Description 判题并返回解析，答对发放 XP，随后重算主题精通度
// @Tags 练习题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   body body service.AnswerRequest true "所选选项"
// @Success 200 {object} util.Response{data=service.AnswerResult} "成功"
// @Router /api/questions/{id}/answer [post]
func (c *QuestionController) Answer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuestionService.Answer(claims.UserID, ctx.Param("id"), req)
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
