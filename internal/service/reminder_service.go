package service

import (
	"context"
	"time"

	"dentalcare-booking/internal/notification"
	"dentalcare-booking/pkg/clock"

	"github.com/sirupsen/logrus"
)

const (
	reminderChannelName        = "Appointment Reminders"
	reminderChannelDescription = "Notifications for appointment reminders"
)

// ReminderService keeps scheduled reminders aligned with an appointment's
// lifecycle. It owns no state: reminder identity is a pure function of the
// appointment id and reminder kind, so cancellation never needs a lookup.
type ReminderService struct {
	channel notification.Channel
	clock   clock.Clock
	log     *logrus.Logger
}

func NewReminderService(channel notification.Channel, clk clock.Clock, log *logrus.Logger) *ReminderService {
	return &ReminderService{
		channel: channel,
		clock:   clk,
		log:     log,
	}
}

// ScheduleReminders schedules the one-day-before and two-hours-before
// reminders for the appointment starting at startAt. A reminder whose fire
// time is not strictly in the future is skipped, not an error: booking one
// hour out legitimately schedules nothing.
func (s *ReminderService) ScheduleReminders(ctx context.Context, appointmentID int, startAt time.Time, title string) error {
	now := s.clock.Now()

	oneDayBefore := startAt.Add(-24 * time.Hour)
	if oneDayBefore.After(now) {
		key := notification.ChannelKey(notification.KindOneDayBefore, appointmentID)
		message := "Reminder: Your appointment is scheduled for tomorrow at " + formatClock(startAt) + "."
		if err := s.scheduleOne(ctx, key, title, message, oneDayBefore); err != nil {
			return err
		}
	} else {
		s.log.Debugf("Skipped one-day reminder for appointment %d: time is in the past", appointmentID)
	}

	twoHoursBefore := startAt.Add(-2 * time.Hour)
	if twoHoursBefore.After(now) {
		key := notification.ChannelKey(notification.KindTwoHoursBefore, appointmentID)
		message := "Reminder: Your appointment is in 2 hours at " + formatClock(startAt) + "."
		if err := s.scheduleOne(ctx, key, title, message, twoHoursBefore); err != nil {
			return err
		}
	} else {
		s.log.Debugf("Skipped two-hours reminder for appointment %d: time is in the past", appointmentID)
	}

	return nil
}

// CancelReminders cancels both reminder kinds for the appointment. Safe to
// call when nothing was ever scheduled.
func (s *ReminderService) CancelReminders(ctx context.Context, appointmentID int) error {
	var firstErr error
	for _, kind := range []notification.Kind{notification.KindOneDayBefore, notification.KindTwoHoursBefore} {
		if err := s.channel.Cancel(ctx, notification.ChannelKey(kind, appointmentID)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CancelAndNotify cancels both reminders and immediately posts a
// cancellation notice carrying the original slot label.
func (s *ReminderService) CancelAndNotify(ctx context.Context, appointmentID int, slotLabel string) error {
	if err := s.CancelReminders(ctx, appointmentID); err != nil {
		return err
	}

	key := notification.ChannelKey(notification.KindCancel, appointmentID)
	message := "Your appointment scheduled for " + slotLabel + " has been cancelled. Please reschedule as needed."
	return s.scheduleOne(ctx, key, "Appointment Cancelled", message, s.clock.Now())
}

func (s *ReminderService) scheduleOne(ctx context.Context, channelID, title, message string, fireAt time.Time) error {
	if err := s.channel.CreateChannel(ctx, channelID, reminderChannelName, reminderChannelDescription, notification.ImportanceHigh, true); err != nil {
		return err
	}
	return s.channel.ScheduleAt(ctx, channelID, title, message, fireAt)
}

func formatClock(t time.Time) string {
	return t.Format("03:04 PM")
}
