package controller

import (
	"errors"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MockTestController struct {
	MockTestService *service.MockTestService
}

func NewMockTestController(mockTestService *service.MockTestService) *MockTestController {
	return &MockTestController{MockTestService: mockTestService}
}

// StartTest godoc
// @Summary 开始模拟测试
// @Description 占用本周额度后从主题题库随机抽题，免费版每周 5 次
// @Tags 模拟测试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.StartTestRequest true "测试设置"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 402 {object} util.Response "超出本周模考额度"
// @Failure 404 {object} util.Response "主题不存在或题库为空"
// @Router /api/mock-tests [post]
func (c *MockTestController) StartTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, questions, err := c.MockTestService.StartTest(claims.UserID, req)
	if err != nil {
		respondTestError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"test": test, "questions": questions})
}

// SubmitTest godoc
// @Summary 提交模拟测试
// @Description 判分并发放 XP，80/100 分档追加奖励
// @Tags 模拟测试
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测试ID"
// @Param   body body service.SubmitTestRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitTestResult} "成功"
// @Failure 409 {object} util.Response "该测试已提交"
// @Router /api/mock-tests/{id}/submit [post]
func (c *MockTestController) SubmitTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.MockTestService.SubmitTest(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		respondTestError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetTests godoc
// @Summary 模拟测试历史
// @Tags 模拟测试
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.MockTest} "成功"
// @Router /api/mock-tests [get]
func (c *MockTestController) GetTests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tests, err := c.MockTestService.GetTests(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tests)
}

// GetTest godoc
// @Summary 模拟测试详情
// @Tags 模拟测试
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测试ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/mock-tests/{id} [get]
func (c *MockTestController) GetTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	test, questions, err := c.MockTestService.GetTest(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondTestError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"test": test, "questions": questions})
}

func respondTestError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrTopicNotFound),
		errors.Is(err, util.ErrNotEnoughQuestions):
		util.Error(ctx, 404, err.Error())
	case errors.Is(err, util.ErrMockTestLimit):
		util.Error(ctx, 402, err.Error())
	case errors.Is(err, util.ErrTestAlreadyDone):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
