package notification

import (
	"context"
	"time"

	"dentalcare-booking/pkg/clock"

	"github.com/sirupsen/logrus"
)

// ScheduleStore is the dispatcher's view of the pending schedule.
type ScheduleStore interface {
	// DueChannelIDs returns every channel id whose fire time is at or
	// before now.
	DueChannelIDs(ctx context.Context, now time.Time) ([]string, error)
	// LoadMessage returns the pending message fields for the channel. An
	// empty map means the entry was cancelled after the due scan.
	LoadMessage(ctx context.Context, channelID string) (map[string]string, error)
	// Remove drops the schedule entry and its message.
	Remove(ctx context.Context, channelID string) error
}

// Dispatcher drains due notifications from the schedule and hands them to a
// Sender. Delivery is best effort: a failed send is logged and the entry
// dropped, never retried against the appointment store.
type Dispatcher struct {
	store    ScheduleStore
	sender   Sender
	log      *logrus.Logger
	clock    clock.Clock
	interval time.Duration
}

func NewDispatcher(store ScheduleStore, sender Sender, log *logrus.Logger, clk clock.Clock, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Dispatcher{
		store:    store,
		sender:   sender,
		log:      log,
		clock:    clk,
		interval: interval,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.dispatchDue(ctx); err != nil {
				d.log.Errorf("Notification dispatch failed: %+v", err)
			}
		}
	}
}

func (d *Dispatcher) dispatchDue(ctx context.Context) error {
	channelIDs, err := d.store.DueChannelIDs(ctx, d.clock.Now())
	if err != nil {
		return err
	}

	for _, channelID := range channelIDs {
		fields, err := d.store.LoadMessage(ctx, channelID)
		if err != nil {
			d.log.Warnf("Failed to load notification %s: %+v", channelID, err)
			continue
		}

		// An empty hash means the schedule entry was cancelled between the
		// due scan and now; just drop it.
		if len(fields) > 0 {
			if err := d.sender.Send(ctx, fields["title"], fields["message"]); err != nil {
				d.log.Warnf("Failed to deliver notification %s (non-fatal): %+v", channelID, err)
			}
		}

		if err := d.store.Remove(ctx, channelID); err != nil {
			d.log.Warnf("Failed to clear notification %s: %+v", channelID, err)
		}
	}
	return nil
}
