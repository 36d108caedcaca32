package controller

import (
	"errors"
	"studypal_backend/internal/service"
	"studypal_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type StudyPlanController struct {
	PlanService *service.StudyPlanService
}

func NewStudyPlanController(planService *service.StudyPlanService) *StudyPlanController {
	return &StudyPlanController{PlanService: planService}
}

// GeneratePlan godoc
// @Summary 生成学习计划
// @Description 删除旧计划后按目标日期与时间段重建任务序列
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.GeneratePlanRequest true "计划设置"
// @Success 201 {object} util.Response{data=[]model.StudyTask} "创建成功"
// @Failure 400 {object} util.Response "目标日期之前没有可用的学习日"
// @Router /api/study-plan/generate [post]
func (c *StudyPlanController) GeneratePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GeneratePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tasks, err := c.PlanService.GeneratePlan(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyPlanRange),
			errors.Is(err, util.ErrNoTopicsSelected),
			errors.Is(err, util.ErrNoStudyTimes):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrTopicNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, tasks)
}

// GetPlan godoc
// @Summary 学习计划全部任务
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudyTask} "成功"
// @Router /api/study-plan [get]
func (c *StudyPlanController) GetPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.PlanService.GetPlan(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

// GetTodayTasks godoc
// @Summary 指定日期的任务
// @Description date 不传时取今天
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   date query string false "日期 yyyy-MM-dd"
// @Success 200 {object} util.Response{data=[]model.StudyTask} "成功"
// @Router /api/study-plan/tasks [get]
func (c *StudyPlanController) GetTodayTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	date := time.Now()
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.Parse(util.DateFormat, raw)
		if err != nil {
			util.BadRequest(ctx, "invalid date, expected yyyy-MM-dd")
			return
		}
		date = parsed
	}

	tasks, err := c.PlanService.GetTasksForDate(claims.UserID, date)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

// CompleteTask godoc
// @Summary 完成任务
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "任务ID"
// @Success 200 {object} util.Response{data=model.StudyTask} "成功"
// @Router /api/study-plan/tasks/{id}/complete [post]
func (c *StudyPlanController) CompleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	task, err := c.PlanService.CompleteTask(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, task)
}
