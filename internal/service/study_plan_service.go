package service

import (
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"time"
)

type StudyPlanService struct {
	TaskRepo  *repository.StudyTaskRepository
	TopicRepo *repository.TopicRepository
	UserRepo  *repository.UserRepository
}

func NewStudyPlanService(
	taskRepo *repository.StudyTaskRepository,
	topicRepo *repository.TopicRepository,
	userRepo *repository.UserRepository,
) *StudyPlanService {
	return &StudyPlanService{
		TaskRepo:  taskRepo,
		TopicRepo: topicRepo,
		UserRepo:  userRepo,
	}
}

type GeneratePlanRequest struct {
	TargetDate string   `json:"targetDate" binding:"required"` // yyyy-MM-dd
	StudyTimes []string `json:"studyTimes" binding:"required"` // 如 ["09:00", "18:00"]
	TopicIDs   []string `json:"topicIds" binding:"required"`
}

// GeneratePlan 重建学习计划：删除旧任务后整批写入，并把目标日期落到用户档案
func (s *StudyPlanService) GeneratePlan(userID uint, req GeneratePlanRequest) ([]model.StudyTask, error) {
	if len(req.TopicIDs) == 0 {
		return nil, util.ErrNoTopicsSelected
	}
	if len(req.StudyTimes) == 0 {
		return nil, util.ErrNoStudyTimes
	}

	target, err := time.Parse(util.DateFormat, req.TargetDate)
	if err != nil {
		return nil, err
	}

	all, err := s.TopicRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(req.TopicIDs))
	for _, id := range req.TopicIDs {
		selected[id] = true
	}
	var topics []model.Topic
	for _, t := range all {
		if selected[t.ID] {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return nil, util.ErrTopicNotFound
	}

	now := time.Now()
	tasks := GeneratePlanTasks(userID, topics, req.StudyTimes, now, target)
	if len(tasks) == 0 {
		return nil, util.ErrEmptyPlanRange
	}

	if err := s.TaskRepo.ReplaceAll(userID, tasks); err != nil {
		return nil, err
	}

	targetDay := util.StartOfDay(target)
	if err := s.UserRepo.UpdateFields(userID, map[string]interface{}{"target_date": targetDay}); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *StudyPlanService) GetPlan(userID uint) ([]model.StudyTask, error) {
	return s.TaskRepo.FindByUser(userID)
}

func (s *StudyPlanService) GetTasksForDate(userID uint, date time.Time) ([]model.StudyTask, error) {
	return s.TaskRepo.FindByUserAndDate(userID, util.StartOfDay(date))
}

// CompleteTask 标记完成，重复调用只生效一次
func (s *StudyPlanService) CompleteTask(userID uint, taskID string) (*model.StudyTask, error) {
	task, err := s.TaskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if task.Completed {
		return task, nil
	}

	now := time.Now()
	task.Completed = true
	task.CompletedAt = &now
	if err := s.TaskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}
