package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/usecase"
	"dentalcare-booking/pkg/response"
	"dentalcare-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.Save(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save feedback")
		return
	}

	response.Success(w, http.StatusCreated, "Feedback saved successfully", feedback)
}

func (h *FeedbackHandler) GetByAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.Atoi(vars["appointmentId"])
	if err != nil || appointmentID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	feedback, err := h.feedbackUsecase.GetByAppointment(r.Context(), appointmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrFeedbackNotFound) {
			response.NotFound(w, "Feedback not found")
			return
		}
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}
