package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"time"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

type UpdateProfileRequest struct {
	Name               string          `json:"name"`
	Avatar             string          `json:"avatar"`
	StudyGoal          model.StudyGoal `json:"studyGoal"`
	StudyMinutesPerDay int             `json:"studyMinutesPerDay"`
	TargetDate         string          `json:"targetDate"` // yyyy-MM-dd
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.StudyGoal != "" {
		user.StudyGoal = req.StudyGoal
	}
	if req.StudyMinutesPerDay > 0 {
		user.StudyMinutesPerDay = req.StudyMinutesPerDay
	}
	if req.TargetDate != "" {
		target, err := time.Parse(util.DateFormat, req.TargetDate)
		if err != nil {
			return nil, err
		}
		user.TargetDate = &target
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers 管理端分页列表
func (s *UserService) ListUsers(page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.List((page-1)*pageSize, pageSize)
}

// SetDisabled 禁用后该用户无法再登录
func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.SetDisabled(userID, disabled)
}

type OnboardingRequest struct {
	StudyGoal          model.StudyGoal `json:"studyGoal" binding:"required"`
	StudyMinutesPerDay int             `json:"studyMinutesPerDay" binding:"required"`
	TargetDate         string          `json:"targetDate"`
}

// CompleteOnboarding 落学习偏好并标记引导完成
func (s *UserService) CompleteOnboarding(userID uint, req OnboardingRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.StudyGoal = req.StudyGoal
	user.StudyMinutesPerDay = req.StudyMinutesPerDay
	if req.TargetDate != "" {
		target, err := time.Parse(util.DateFormat, req.TargetDate)
		if err != nil {
			return nil, err
		}
		user.TargetDate = &target
	}
	user.OnboardingCompleted = true

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
