package dto

import "time"

// Request DTOs

type CreateFeedbackRequest struct {
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment"`
	AppointmentID *int   `json:"appointment_id"`
}

// Response DTOs

type FeedbackResponse struct {
	ID            int       `json:"id"`
	AppointmentID *int      `json:"appointment_id,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
	Total    int                `json:"total"`
}

type FeedbackStatsResponse struct {
	AverageRating float64     `json:"average_rating"`
	TotalRatings  int         `json:"total_ratings"`
	RatingsCount  map[int]int `json:"ratings_count"`
}
