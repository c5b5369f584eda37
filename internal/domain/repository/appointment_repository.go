package repository

import (
	"context"
	"time"

	"dentalcare-booking/internal/domain/entity"
)

// AppointmentRepository is the single source of truth for appointment rows.
// Implementations must make each operation an all-or-nothing unit; callers
// compose them sequentially (the conflict-check-then-write pair is not
// atomic in this single-writer deployment).
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id int) (*entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateStatus(ctx context.Context, id int, status entity.Status) error
	// IsSlotTaken reports whether a non-Cancelled appointment other than
	// excludeID already occupies (date, slot). excludeID 0 excludes nothing.
	IsSlotTaken(ctx context.Context, date time.Time, slot string, excludeID int) (bool, error)
}
