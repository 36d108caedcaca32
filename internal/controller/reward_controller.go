package controller

import (
	"errors"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RewardController struct {
	RewardService *service.RewardService
}

func NewRewardController(rewardService *service.RewardService) *RewardController {
	return &RewardController{RewardService: rewardService}
}

// GetRewards godoc
// @Summary 奖励目录与兑换记录
// @Tags 奖励
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/rewards [get]
func (c *RewardController) GetRewards(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	catalog, claimed, err := c.RewardService.GetRewards(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"catalog": catalog, "claimed": claimed})
}

// ClaimReward godoc
// @Summary 兑换奖励
// @Description 扣减 XP 兑换，余额不足返回 402
// @Tags 奖励
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "奖励ID"
// @Success 201 {object} util.Response{data=model.UserReward} "兑换成功"
// @Failure 402 {object} util.Response "XP 不足"
// @Failure 403 {object} util.Response "仅限 Pro 用户"
// @Router /api/rewards/{id}/claim [post]
func (c *RewardController) ClaimReward(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	ur, err := c.RewardService.Claim(claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRewardNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInsufficientXP):
			util.Error(ctx, 402, err.Error())
		case errors.Is(err, util.ErrRewardProOnly):
			util.Error(ctx, 403, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, ur)
}
