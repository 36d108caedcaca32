package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrAccountDisabled    = errors.New("账号已被禁用")
	ErrPermissionDenied   = errors.New("无权访问该资源")
	ErrTopicNotFound      = errors.New("主题不存在")
	ErrTopicLimitReached  = errors.New("主题数量已达当前套餐上限")
	ErrUploadLimitReached = errors.New("本周上传次数已用完")
	ErrMockTestLimit      = errors.New("本周模拟测试次数已用完")
	ErrRegenerateLimit    = errors.New("本周重新生成次数已用完")
	ErrNoUploadForTopic   = errors.New("该主题还没有上传内容，请先上传")
	ErrNoExtractedText    = errors.New("该上传没有可用的原文")
	ErrEmptyPlanRange     = errors.New("目标日期之前没有可用的学习日")
	ErrNoTopicsSelected   = errors.New("请至少选择一个主题")
	ErrNoStudyTimes       = errors.New("请至少设置一个学习时间段")
	ErrBadgeNotFound      = errors.New("徽章不存在")
	ErrRewardNotFound     = errors.New("奖励不存在")
	ErrRewardProOnly      = errors.New("该奖励仅限 Pro 用户兑换")
	ErrInsufficientXP     = errors.New("XP 不足，无法兑换该奖励")
	ErrTestNotFound       = errors.New("模拟测试不存在")
	ErrTestAlreadyDone    = errors.New("该模拟测试已完成")
	ErrNotEnoughQuestions = errors.New("该主题没有可出题的题目")
)
