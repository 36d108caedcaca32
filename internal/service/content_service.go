package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"studypal_backend/internal/model"
	"studypal_backend/internal/repository"
	"studypal_backend/internal/util"
	"studypal_backend/pkg/logger"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContentService struct {
	ContentRepo    *repository.ContentRepository
	TopicRepo      *repository.TopicRepository
	FlashcardRepo  *repository.FlashcardRepository
	QuestionRepo   *repository.QuestionRepository
	UserRepo       *repository.UserRepository
	AIService      *AIService
	StorageService *StorageService
	SubService     *SubscriptionService
	GamService     *GamificationService
}

func NewContentService(
	contentRepo *repository.ContentRepository,
	topicRepo *repository.TopicRepository,
	flashcardRepo *repository.FlashcardRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	aiService *AIService,
	storageService *StorageService,
	subService *SubscriptionService,
	gamService *GamificationService,
) *ContentService {
	return &ContentService{
		ContentRepo:    contentRepo,
		TopicRepo:      topicRepo,
		FlashcardRepo:  flashcardRepo,
		QuestionRepo:   questionRepo,
		UserRepo:       userRepo,
		AIService:      aiService,
		StorageService: storageService,
		SubService:     subService,
		GamService:     gamService,
	}
}

type UploadContentRequest struct {
	TopicID     string `json:"topicId" binding:"required"`
	Content     string `json:"content"`
	ImageBase64 string `json:"imageBase64"`
	MimeType    string `json:"mimeType"`
	FileName    string `json:"fileName"`
}

// UploadContent 占用额度 → AI 生成 → 落库上传记录与学习材料
// 多步写入非原子：生成成功但落库失败时额度不回退
func (s *ContentService) UploadContent(ctx context.Context, userID uint, req UploadContentRequest) (*model.ContentUpload, error) {
	topic, err := s.TopicRepo.FindByID(req.TopicID)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	if topic.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	if err := s.SubService.ConsumeUpload(userID); err != nil {
		return nil, err
	}

	generated, err := s.AIService.GenerateContent(GenerateContentRequest{
		Content:     req.Content,
		ImageBase64: req.ImageBase64,
		MimeType:    req.MimeType,
	})
	if err != nil {
		return nil, err
	}

	fileType := "text"
	if req.ImageBase64 != "" {
		fileType = req.MimeType
	}
	upload := &model.ContentUpload{
		UserID:        userID,
		TopicID:       req.TopicID,
		FileName:      req.FileName,
		FileType:      fileType,
		ExtractedText: generated.ExtractedText,
		Summary:       generated.Summary,
	}
	if err := s.saveGenerated(userID, req.TopicID, upload, generated); err != nil {
		return nil, err
	}

	if !topic.InitialSetGenerated {
		topic.InitialSetGenerated = true
		if err := s.TopicRepo.Update(topic); err != nil {
			return nil, err
		}
	}

	// 首次上传里程碑
	s.UserRepo.UpdateFields(userID, map[string]interface{}{"first_upload_completed": true})

	// 上传完成算一次学习会话，发 XP 并推进连续天数
	if _, err := s.GamService.AwardXP(userID, AwardXPRequest{
		EventType: EventPracticeSession,
		Metadata:  map[string]interface{}{"type": "upload"},
	}); err != nil {
		logger.Log.Error("Failed to award upload XP", zap.Uint("user_id", userID), zap.Error(err))
	}
	if _, err := s.GamService.RecordActivity(userID); err != nil {
		logger.Log.Error("Failed to record activity", zap.Uint("user_id", userID), zap.Error(err))
	}

	return upload, nil
}

// UploadFile 文件落存储后走与文本上传相同的生成流程
func (s *ContentService) UploadFile(ctx context.Context, userID uint, topicID string, header *multipart.FileHeader, content string, imageBase64 string, mimeType string) (*model.ContentUpload, error) {
	req := UploadContentRequest{
		TopicID:     topicID,
		Content:     content,
		ImageBase64: imageBase64,
		MimeType:    mimeType,
	}

	if header != nil {
		req.FileName = header.Filename
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()

		objectName := fmt.Sprintf("uploads/%d/%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename))
		fileURL, err := s.StorageService.Upload(ctx, objectName, f, header.Size, mimeType)
		if err != nil {
			return nil, err
		}

		upload, err := s.UploadContent(ctx, userID, req)
		if err != nil {
			return nil, err
		}
		upload.FileURL = fileURL
		if err := s.ContentRepo.Update(upload); err != nil {
			return nil, err
		}
		return upload, nil
	}

	return s.UploadContent(ctx, userID, req)
}

// Regenerate 用最近一次上传的原文重新生成卡片与题目
// 顺序：清空旧材料 → 调模型 → 写入新材料；模型失败时旧材料已删，与上传页提示一致
func (s *ContentService) Regenerate(userID uint, topicID string) (*model.ContentUpload, error) {
	topic, err := s.TopicRepo.FindByID(topicID)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	if topic.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	latest, err := s.ContentRepo.FindLatestByTopic(topicID)
	if err != nil {
		return nil, util.ErrNoUploadForTopic
	}
	if latest.ExtractedText == "" {
		return nil, util.ErrNoExtractedText
	}

	if err := s.SubService.ConsumeRegenerate(userID); err != nil {
		return nil, err
	}

	if err := s.FlashcardRepo.DeleteByTopic(topicID); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.DeleteByTopic(topicID); err != nil {
		return nil, err
	}

	generated, err := s.AIService.GenerateContent(GenerateContentRequest{Content: latest.ExtractedText})
	if err != nil {
		return nil, err
	}

	upload := &model.ContentUpload{
		UserID:        userID,
		TopicID:       topicID,
		FileName:      latest.FileName,
		FileType:      latest.FileType,
		FileURL:       latest.FileURL,
		ExtractedText: generated.ExtractedText,
		Summary:       generated.Summary,
	}
	if err := s.saveGenerated(userID, topicID, upload, generated); err != nil {
		return nil, err
	}

	if err := s.TopicRepo.MarkRegenerated(topicID, time.Now()); err != nil {
		return nil, err
	}

	return upload, nil
}

func (s *ContentService) saveGenerated(userID uint, topicID string, upload *model.ContentUpload, generated *GeneratedContent) error {
	upload.FlashcardCount = len(generated.Flashcards)
	upload.QuestionCount = len(generated.Questions)
	upload.Processed = true
	if err := s.ContentRepo.Create(upload); err != nil {
		return err
	}

	cards := make([]model.Flashcard, 0, len(generated.Flashcards))
	for _, f := range generated.Flashcards {
		cards = append(cards, model.Flashcard{
			UserID:   userID,
			TopicID:  topicID,
			UploadID: upload.ID,
			Front:    f.Front,
			Back:     f.Back,
		})
	}
	if err := s.FlashcardRepo.BulkCreate(cards); err != nil {
		return err
	}

	questions := make([]model.Question, 0, len(generated.Questions))
	for _, q := range generated.Questions {
		questions = append(questions, model.Question{
			UserID:        userID,
			TopicID:       topicID,
			UploadID:      upload.ID,
			Question:      q.Question,
			Options:       model.StringList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return s.QuestionRepo.BulkCreate(questions)
}

func (s *ContentService) GetUploads(userID uint) ([]model.ContentUpload, error) {
	return s.ContentRepo.FindByUser(userID)
}
