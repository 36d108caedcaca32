package controller

import (
	"errors"
	"strconv"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	TopicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

// CreateTopic godoc
// @Summary 创建学习主题
// @Description 免费版受主题数量上限约束
// @Tags 主题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TopicRequest true "主题信息"
// @Success 201 {object} util.Response{data=model.Topic} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 402 {object} util.Response "主题数量已达上限"
// @Router /api/topics [post]
func (c *TopicController) CreateTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.TopicService.CreateTopic(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrTopicLimitReached) {
			util.Error(ctx, 402, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, topic)
}

// GetTopics godoc
// @Summary 主题列表
// @Tags 主题
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Topic} "成功"
// @Router /api/topics [get]
func (c *TopicController) GetTopics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topics, err := c.TopicService.GetTopics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, topics)
}

// GetTopic godoc
// @Summary 主题详情
// @Description 附带该主题累计获得的 XP
// @Tags 主题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "主题ID"
// @Success 200 {object} util.Response{data=service.TopicDetail} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/topics/{id} [get]
func (c *TopicController) GetTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topic, err := c.TopicService.GetTopicDetail(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondTopicError(ctx, err)
		return
	}

	util.Success(ctx, topic)
}

// UpdateTopic godoc
// @Summary 更新主题
// @Tags 主题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "主题ID"
// @Param   body body service.TopicRequest true "主题信息"
// @Success 200 {object} util.Response{data=model.Topic} "成功"
// @Router /api/topics/{id} [put]
func (c *TopicController) UpdateTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.TopicService.UpdateTopic(claims.UserID, ctx.Param("id"), req)
	if err != nil {
		respondTopicError(ctx, err)
		return
	}

	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary 删除主题
// @Description 级联删除主题下的卡片、题目、上传记录与计划任务
// @Tags 主题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "主题ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/topics/{id} [delete]
func (c *TopicController) DeleteTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TopicService.DeleteTopic(claims.UserID, ctx.Param("id")); err != nil {
		respondTopicError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// GetLeaderboard godoc
// @Summary XP 排行榜
// @Description 按总 XP 排名，带 Redis 缓存
// @Tags 主题
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "数量，默认10"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "成功"
// @Router /api/leaderboard [get]
func (c *TopicController) GetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.TopicService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

func respondTopicError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTopicNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
