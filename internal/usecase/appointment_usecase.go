package usecase

import (
	"context"
	"errors"
	"time"

	"dentalcare-booking/internal/converter"
	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/domain/entity"
	"dentalcare-booking/internal/domain/repository"
	"dentalcare-booking/internal/service"
	"dentalcare-booking/pkg/clock"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentNotEditable = errors.New("appointment can no longer be edited")
	ErrSlotTaken              = errors.New("time slot is already booked")
	ErrInvalidTimeSlot        = errors.New("invalid time slot")
	ErrInvalidDateFormat      = errors.New("invalid date format, use YYYY-MM-DD")
)

// StatusFilterAll disables status filtering in List.
const StatusFilterAll = "All"

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	// ChangeStatus applies a state-machine transition. notifyCancellation
	// posts the cancellation notice on entering Cancelled (admin path).
	ChangeStatus(ctx context.Context, id int, newStatus entity.Status, notifyCancellation bool) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	List(ctx context.Context, statusFilter string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	reminders       *service.ReminderService
	clock           clock.Clock
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	reminders *service.ReminderService,
	clk clock.Clock,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		reminders:       reminders,
		clock:           clk,
	}
}

// Create books a new Pending appointment.
//
// Flow:
// 1. Parse and validate the requested slot
// 2. Conflict check (no write yet, fail fast)
// 3. Insert the appointment
// 4. Schedule reminders (best effort, never rolls back the insert)
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	taken, err := u.appointmentRepo.IsSlotTaken(ctx, date, req.Time, 0)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		Name:    req.Name,
		Contact: req.Contact,
		Date:    date,
		Time:    req.Time,
		Reason:  req.Reason,
		Status:  entity.StatusPending,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	// The insert is the source of truth; a reminder scheduling failure is
	// logged, never surfaced as a booking failure.
	if err := u.reminders.ScheduleReminders(ctx, appointment.ID, appointment.StartAt(), "Appointment Reminder"); err != nil {
		u.log.Warnf("Failed to schedule reminders for appointment %d (non-fatal): %+v", appointment.ID, err)
	}

	u.log.Infof("Appointment created: id=%d, date=%s, time=%s", appointment.ID, req.Date, req.Time)
	return converter.AppointmentToResponse(appointment, u.clock.Now()), nil
}

// Update reschedules or edits an appointment. Reminders are always cancelled
// and rescheduled against the new slot, even if the slot did not change:
// recomputing is cheap and rules out drift.
func (u *appointmentUsecase) Update(ctx context.Context, id int, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// Terminal rows are frozen: editing one would resurrect reminders for a
	// booking that no longer exists.
	if appointment.Status == entity.StatusCancelled || appointment.Status == entity.StatusDone {
		return nil, ErrAppointmentNotEditable
	}

	date, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	// Conflict check excludes the appointment itself so it can keep its slot.
	taken, err := u.appointmentRepo.IsSlotTaken(ctx, date, req.Time, id)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appointment.Name = req.Name
	appointment.Contact = req.Contact
	appointment.Date = date
	appointment.Time = req.Time
	appointment.Reason = req.Reason

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	if err := u.reminders.CancelReminders(ctx, id); err != nil {
		u.log.Warnf("Failed to cancel reminders for appointment %d (non-fatal): %+v", id, err)
	}
	if err := u.reminders.ScheduleReminders(ctx, id, appointment.StartAt(), "Appointment Reminder"); err != nil {
		u.log.Warnf("Failed to reschedule reminders for appointment %d (non-fatal): %+v", id, err)
	}

	u.log.Infof("Appointment updated: id=%d, date=%s, time=%s", id, req.Date, req.Time)
	return converter.AppointmentToResponse(appointment, u.clock.Now()), nil
}

func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id int, newStatus entity.Status, notifyCancellation bool) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := appointment.TransitionTo(newStatus); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		u.log.Warnf("Failed to update status of appointment %d: %+v", id, err)
		return nil, err
	}

	switch newStatus {
	case entity.StatusCancelled:
		if notifyCancellation {
			if err := u.reminders.CancelAndNotify(ctx, id, appointment.Time); err != nil {
				u.log.Warnf("Failed to cancel reminders for appointment %d (non-fatal): %+v", id, err)
			}
		} else {
			if err := u.reminders.CancelReminders(ctx, id); err != nil {
				u.log.Warnf("Failed to cancel reminders for appointment %d (non-fatal): %+v", id, err)
			}
		}
	case entity.StatusDone:
		if err := u.reminders.CancelReminders(ctx, id); err != nil {
			u.log.Warnf("Failed to cancel reminders for appointment %d (non-fatal): %+v", id, err)
		}
	}

	u.log.Infof("Appointment status updated: id=%d, status=%s", id, newStatus)
	return converter.AppointmentToResponse(appointment, u.clock.Now()), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment, u.clock.Now()), nil
}

// List returns all appointments ordered by slot, display status applied.
// statusFilter matches the display status, so "Expired" selects lapsed
// Pending rows and "Pending" only upcoming ones.
func (u *appointmentUsecase) List(ctx context.Context, statusFilter string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	now := u.clock.Now()
	responses := converter.AppointmentsToResponses(appointments, now)

	if statusFilter != "" && statusFilter != StatusFilterAll {
		filtered := make([]dto.AppointmentResponse, 0, len(responses))
		for _, resp := range responses {
			if resp.Status == statusFilter {
				filtered = append(filtered, resp)
			}
		}
		responses = filtered
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func parseSlot(dateStr, slot string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if !entity.IsTimeSlot(slot) {
		return time.Time{}, ErrInvalidTimeSlot
	}
	return date, nil
}
