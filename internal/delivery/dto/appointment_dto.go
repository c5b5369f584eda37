package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
}

type UpdateAppointmentRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required"`
	Reason  string `json:"reason" validate:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
