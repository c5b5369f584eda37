package entity

import (
	"errors"
	"time"
)

// Status is the persisted lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusCancelled Status = "Cancelled"
	StatusDone      Status = "Done"
)

// DisplayStatusExpired is a read-time label for a Pending appointment whose
// slot has passed. It is derived, never stored.
const DisplayStatusExpired = "Expired"

// ErrInvalidTransition is returned when a status change is not allowed by the
// appointment state machine.
var ErrInvalidTransition = errors.New("invalid status transition")

var ErrUnknownStatus = errors.New("unknown status")

// statusTransitions is the legal transition graph. Cancelled and Done are
// terminal. Approved appointments can only complete, not be cancelled.
var statusTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusDone},
}

// TimeSlots is the fixed set of bookable slot labels, hourly 09:00-18:00.
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// Reasons lists the predefined visit reasons. "Other" admits free text.
var Reasons = []string{
	"Checkup", "Consultation", "Follow-up", "Treatment", "Surgery", "Other",
}

// Appointment is a booked time slot on the clinic calendar.
type Appointment struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Contact   string    `gorm:"type:varchar(10);not null" json:"contact"`
	Date      time.Time `gorm:"type:date;not null;index:idx_appointments_slot" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null;index:idx_appointments_slot" json:"time"`
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ParseStatus maps a request string onto a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusCancelled, StatusDone:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// IsTimeSlot reports whether label is one of the bookable slot labels.
func IsTimeSlot(label string) bool {
	for _, s := range TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// StartAt combines the appointment date and slot label into the concrete
// slot start time. Always local time: slot labels are clinic wall-clock
// labels, and DATE columns may scan back in UTC.
func (a *Appointment) StartAt() time.Time {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		return a.Date
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (a *Appointment) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo applies a status change, enforcing the transition graph.
func (a *Appointment) TransitionTo(next Status) error {
	if !a.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	a.Status = next
	return nil
}

// DisplayStatus is the status shown in read views: a Pending appointment
// whose slot start is in the past renders as Expired. The stored status is
// never mutated by this.
func (a *Appointment) DisplayStatus(now time.Time) string {
	if a.Status == StatusPending && a.StartAt().Before(now) {
		return DisplayStatusExpired
	}
	return string(a.Status)
}

func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}
