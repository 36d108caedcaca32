package service

import (
	"errors"
	"studypal_backend/internal/config"
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"studypal_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	GamService *GamificationService
	Cfg        *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, gamService *GamificationService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:   userRepo,
		GamService: gamService,
		Cfg:        cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

// Login 校验密码签发 JWT，当天首次登录发每日登录 XP 并推进连续天数
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	if user.Disabled {
		return "", util.ErrAccountDisabled
	}

	now := time.Now()
	if util.DaysBetween(user.LastLogin, now) >= 1 {
		if _, err := s.GamService.AwardXP(user.ID, AwardXPRequest{EventType: EventDailyLogin}); err != nil {
			logger.Log.Error("Failed to award daily login XP", zap.Uint("user_id", user.ID), zap.Error(err))
		}
		if _, err := s.GamService.RecordActivity(user.ID); err != nil {
			logger.Log.Error("Failed to record login activity", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}
	if err := s.UserRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Log.Error("Failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
