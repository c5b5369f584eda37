package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/domain/entity"
	"dentalcare-booking/internal/usecase"
	"dentalcare-booking/pkg/response"
	"dentalcare-booking/pkg/validator"
)

// AdminHandler serves the admin dashboard: the full appointment list with
// status filtering, status transitions, and feedback statistics.
type AdminHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	feedbackUsecase    usecase.FeedbackUsecase
	validator          *validator.CustomValidator
}

func NewAdminHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	feedbackUsecase usecase.FeedbackUsecase,
	validator *validator.CustomValidator,
) *AdminHandler {
	return &AdminHandler{
		appointmentUsecase: appointmentUsecase,
		feedbackUsecase:    feedbackUsecase,
		validator:          validator,
	}
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AdminHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := appointmentID(w, r)
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	newStatus, err := entity.ParseStatus(req.Status)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown status", nil)
		return
	}

	appointment, err := h.appointmentUsecase.ChangeStatus(r.Context(), id, newStatus, true)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, entity.ErrInvalidTransition):
			response.Conflict(w, "Status change is not allowed from the current status")
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AdminHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedbackUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

func (h *AdminHandler) FeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.feedbackUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load feedback stats")
		return
	}

	response.Success(w, http.StatusOK, "Feedback stats retrieved successfully", stats)
}
