package repository

import (
	"context"

	"dentalcare-booking/internal/domain/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByAppointmentID(ctx context.Context, appointmentID int) (*entity.Feedback, error)
	FindAll(ctx context.Context) ([]entity.Feedback, error)
	// Ratings returns every stored rating value, for aggregate stats.
	Ratings(ctx context.Context) ([]int, error)
}
