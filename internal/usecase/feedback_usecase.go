package usecase

import (
	"context"
	"errors"

	"dentalcare-booking/internal/converter"
	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/domain/entity"
	"dentalcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackUsecase interface {
	Save(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	GetByAppointment(ctx context.Context, appointmentID int) (*dto.FeedbackResponse, error)
	List(ctx context.Context) (*dto.FeedbackListResponse, error)
	Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error)
}

type feedbackUsecase struct {
	log          *logrus.Logger
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackUsecase(log *logrus.Logger, feedbackRepo repository.FeedbackRepository) FeedbackUsecase {
	return &feedbackUsecase{
		log:          log,
		feedbackRepo: feedbackRepo,
	}
}

// Save inserts a feedback row. The appointment reference is weak: it is not
// resolved or checked, and the row is never mutated afterwards.
func (u *feedbackUsecase) Save(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	feedback := &entity.Feedback{
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := u.feedbackRepo.Create(ctx, feedback); err != nil {
		u.log.Warnf("Failed to save feedback: %+v", err)
		return nil, err
	}

	u.log.Infof("Feedback saved: id=%d, rating=%d", feedback.ID, feedback.Rating)
	return converter.FeedbackToResponse(feedback), nil
}

func (u *feedbackUsecase) GetByAppointment(ctx context.Context, appointmentID int) (*dto.FeedbackResponse, error) {
	feedback, err := u.feedbackRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find feedback for appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}

	return converter.FeedbackToResponse(feedback), nil
}

func (u *feedbackUsecase) List(ctx context.Context) (*dto.FeedbackListResponse, error) {
	feedbacks, err := u.feedbackRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list feedback: %+v", err)
		return nil, err
	}

	return &dto.FeedbackListResponse{
		Feedback: converter.FeedbacksToResponses(feedbacks),
		Total:    len(feedbacks),
	}, nil
}

// Stats aggregates ratings for the admin dashboard: average, total and a
// per-star histogram.
func (u *feedbackUsecase) Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	ratings, err := u.feedbackRepo.Ratings(ctx)
	if err != nil {
		u.log.Warnf("Failed to load ratings: %+v", err)
		return nil, err
	}

	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	total := 0
	for _, rating := range ratings {
		counts[rating]++
		total += rating
	}

	average := 0.0
	if len(ratings) > 0 {
		average = float64(total) / float64(len(ratings))
	}

	return &dto.FeedbackStatsResponse{
		AverageRating: average,
		TotalRatings:  len(ratings),
		RatingsCount:  counts,
	}, nil
}
