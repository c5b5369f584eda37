package converter

import (
	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/domain/entity"
)

// FeedbackToResponse converts a Feedback entity to FeedbackResponse DTO
func FeedbackToResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	return &dto.FeedbackResponse{
		ID:            feedback.ID,
		AppointmentID: feedback.AppointmentID,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		CreatedAt:     feedback.CreatedAt,
	}
}

// FeedbacksToResponses converts a slice of Feedback entities to response DTOs
func FeedbacksToResponses(feedbacks []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(feedbacks))
	for i, feedback := range feedbacks {
		resp := FeedbackToResponse(&feedback)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
