package repository

import (
	"context"
	"time"

	"github.com/adistaps/simola-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindAll(ctx context.Context) ([]model.Feedback, error)
	CreatePhoto(ctx context.Context, photo *model.FeedbackPhoto) error
	LinkPhoto(ctx context.Context, photoID, feedbackID uuid.UUID) error
	// FindOrphanPhotos mengembalikan foto tanpa feedback yang lebih tua dari cutoff.
	FindOrphanPhotos(ctx context.Context, cutoff time.Time) ([]model.FeedbackPhoto, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *feedbackRepository) CreatePhoto(ctx context.Context, photo *model.FeedbackPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *feedbackRepository) LinkPhoto(ctx context.Context, photoID, feedbackID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.FeedbackPhoto{}).
		Where("id = ?", photoID).
		Update("feedback_id", feedbackID).Error
}

func (r *feedbackRepository) FindOrphanPhotos(ctx context.Context, cutoff time.Time) ([]model.FeedbackPhoto, error) {
	var photos []model.FeedbackPhoto
	if err := r.db.WithContext(ctx).
		Where("feedback_id IS NULL AND created_at < ?", cutoff).
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *feedbackRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FeedbackPhoto{}, "id = ?", id).Error
}
