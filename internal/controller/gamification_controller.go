package controller

import (
	"strconv"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamService *service.GamificationService
}

func NewGamificationController(gamService *service.GamificationService) *GamificationController {
	return &GamificationController{GamService: gamService}
}

// GetProgress godoc
// @Summary 学习进度总览
// @Description XP 总量、等级、级内进度、连续天数与各主题精通度
// @Tags 游戏化
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.GamificationProgress} "成功"
// @Router /api/gamification/progress [get]
func (c *GamificationController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.GamService.GetProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// AwardXP godoc
// @Summary 发放 XP
// @Description 按事件类型发放 XP，Pro 用户高分事件自动加成
// @Tags 游戏化
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.AwardXPRequest true "事件信息"
// @Success 200 {object} util.Response{data=service.AwardXPResult} "成功"
// @Router /api/gamification/xp [post]
func (c *GamificationController) AwardXP(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AwardXPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GamService.AwardXP(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// RecordActivity godoc
// @Summary 记录当日学习活动
// @Description 推进连续学习天数，到达 7/30 天时发放里程碑奖励
// @Tags 游戏化
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ActivityResult} "成功"
// @Router /api/gamification/activity [post]
func (c *GamificationController) RecordActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.GamService.RecordActivity(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetXPEvents godoc
// @Summary XP 流水
// @Tags 游戏化
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "数量，默认50"
// @Success 200 {object} util.Response{data=[]model.XPEvent} "成功"
// @Router /api/gamification/events [get]
func (c *GamificationController) GetXPEvents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	events, err := c.GamService.GetXPEvents(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, events)
}
