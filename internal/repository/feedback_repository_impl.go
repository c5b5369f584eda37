package repository

import (
	"context"
	"errors"

	"dentalcare-booking/internal/domain/entity"
	domainRepo "dentalcare-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) domainRepo.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) FindByAppointmentID(ctx context.Context, appointmentID int) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]entity.Feedback, error) {
	var feedbacks []entity.Feedback
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *feedbackRepository) Ratings(ctx context.Context) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&entity.Feedback{}).
		Pluck("rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}
