package controller

import (
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	SubService *service.SubscriptionService
}

func NewSubscriptionController(subService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{SubService: subService}
}

// GetSubscription godoc
// @Summary 订阅状态与额度
// @Description 当前档位、本周已用量与各项限额
// @Tags 订阅
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/subscription [get]
func (c *SubscriptionController) GetSubscription(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sub, err := c.SubService.GetSubscription(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	usage, err := c.SubService.GetUsage(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	limits := service.LimitsForPlan(c.SubService.EffectivePlan(sub))

	util.Success(ctx, gin.H{
		"subscription": sub,
		"usage":        usage,
		"limits":       limits,
	})
}

// UpdateSubscription godoc
// @Summary 切换订阅档位
// @Description 计费由外部系统负责，这里只更新档位状态
// @Tags 订阅
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.UpdateSubscriptionRequest true "目标档位"
// @Success 200 {object} util.Response{data=model.Subscription} "成功"
// @Router /api/subscription [put]
func (c *SubscriptionController) UpdateSubscription(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.SubService.UpdatePlan(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}
