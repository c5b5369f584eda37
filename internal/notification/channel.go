package notification

import (
	"context"
	"fmt"
	"time"
)

// Importance mirrors the notification importance levels of the device
// notification subsystem.
type Importance int

const (
	ImportanceDefault Importance = iota
	ImportanceHigh
)

// Kind identifies one of the reminder notifications attached to an
// appointment.
type Kind string

const (
	KindOneDayBefore   Kind = "ONE_DAY_BEFORE"
	KindTwoHoursBefore Kind = "TWO_HOURS_BEFORE"
	KindCancel         Kind = "CANCEL"
)

// ChannelKey derives the channel id for an appointment reminder. The format
// must stay bit-exact: any schedule persisted under it can only be cancelled
// by recomputing the same key.
func ChannelKey(kind Kind, appointmentID int) string {
	return fmt.Sprintf("%s-%d", kind, appointmentID)
}

// Channel is the scheduled-notification subsystem consumed by the reminder
// scheduler. Implementations deliver best effort; none of these operations
// participate in the appointment write.
type Channel interface {
	// CreateChannel registers a notification channel. Idempotent; safe to
	// call repeatedly with the same id.
	CreateChannel(ctx context.Context, channelID, name, description string, importance Importance, vibrate bool) error
	// ScheduleAt schedules exactly one notification on the channel at fireAt.
	ScheduleAt(ctx context.Context, channelID, title, message string, fireAt time.Time) error
	// Cancel removes whatever is scheduled under channelID. No-op if nothing
	// is scheduled there.
	Cancel(ctx context.Context, channelID string) error
}
