package repository

import (
	"studypal_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(upload *model.ContentUpload) error {
	return r.DB.Create(upload).Error
}

func (r *ContentRepository) FindByID(id string) (*model.ContentUpload, error) {
	var upload model.ContentUpload
	err := r.DB.Where("id = ?", id).First(&upload).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *ContentRepository) FindByUser(userID uint) ([]model.ContentUpload, error) {
	var uploads []model.ContentUpload
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&uploads).Error
	return uploads, err
}

// FindLatestByTopic 再生成时取该主题最近一次已处理的上传
func (r *ContentRepository) FindLatestByTopic(topicID string) (*model.ContentUpload, error) {
	var upload model.ContentUpload
	err := r.DB.Where("topic_id = ? AND processed = ?", topicID, true).
		Order("created_at DESC").First(&upload).Error
	if err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *ContentRepository) Update(upload *model.ContentUpload) error {
	return r.DB.Save(upload).Error
}
