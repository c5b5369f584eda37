package converter

import (
	"time"

	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// now feeds the derived display status, so Expired appears in every read
// view without touching the stored status.
func AppointmentToResponse(appointment *entity.Appointment, now time.Time) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:        appointment.ID,
		Name:      appointment.Name,
		Contact:   appointment.Contact,
		Date:      appointment.Date.Format("2006-01-02"),
		Time:      appointment.Time,
		Reason:    appointment.Reason,
		Status:    appointment.DisplayStatus(now),
		CreatedAt: appointment.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to
// response DTOs.
func AppointmentsToResponses(appointments []entity.Appointment, now time.Time) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment, now)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
