package notification

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// memSchedule mirrors the Redis layout in memory: a fire-time index plus a
// message hash per channel id.
type memSchedule struct {
	fireAt   map[string]time.Time
	messages map[string]map[string]string
}

func newMemSchedule() *memSchedule {
	return &memSchedule{
		fireAt:   make(map[string]time.Time),
		messages: make(map[string]map[string]string),
	}
}

func (s *memSchedule) add(channelID, title, message string, fireAt time.Time) {
	s.fireAt[channelID] = fireAt
	s.messages[channelID] = map[string]string{"title": title, "message": message}
}

func (s *memSchedule) DueChannelIDs(_ context.Context, now time.Time) ([]string, error) {
	var due []string
	for channelID, fireAt := range s.fireAt {
		if !fireAt.After(now) {
			due = append(due, channelID)
		}
	}
	sort.Strings(due)
	return due, nil
}

func (s *memSchedule) LoadMessage(_ context.Context, channelID string) (map[string]string, error) {
	return s.messages[channelID], nil
}

func (s *memSchedule) Remove(_ context.Context, channelID string) error {
	delete(s.fireAt, channelID)
	delete(s.messages, channelID)
	return nil
}

type recordingSender struct {
	sent      []string
	failTitle string
}

func (r *recordingSender) Send(_ context.Context, title, _ string) error {
	if title == r.failTitle {
		return errors.New("gateway unavailable")
	}
	r.sent = append(r.sent, title)
	return nil
}

func newDispatcherUnderTest(store ScheduleStore, sender Sender, now time.Time) *Dispatcher {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewDispatcher(store, sender, log, fixedClock{now}, time.Second)
}

func TestDispatchDueDeliversOnlyDue(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := newMemSchedule()
	store.add("ONE_DAY_BEFORE-1", "Appointment Reminder", "due yesterday", now.Add(-time.Minute))
	store.add("TWO_HOURS_BEFORE-1", "Appointment Reminder", "not yet", now.Add(time.Hour))
	sender := &recordingSender{}
	d := newDispatcherUnderTest(store, sender, now)

	require.NoError(t, d.dispatchDue(context.Background()))

	assert.Equal(t, []string{"Appointment Reminder"}, sender.sent)
	assert.NotContains(t, store.fireAt, "ONE_DAY_BEFORE-1", "delivered entry is cleared")
	assert.Contains(t, store.fireAt, "TWO_HOURS_BEFORE-1", "future entry stays scheduled")
}

func TestDispatchDueDropsCancelledEntry(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := newMemSchedule()
	// Fire-time entry with no message hash: cancelled after the due scan.
	store.fireAt["CANCEL-9"] = now.Add(-time.Minute)
	sender := &recordingSender{}
	d := newDispatcherUnderTest(store, sender, now)

	require.NoError(t, d.dispatchDue(context.Background()))

	assert.Empty(t, sender.sent, "a cancelled entry must not be delivered")
	assert.Empty(t, store.fireAt, "the stale entry is still cleared")
}

func TestDispatchDueIsolatesSendFailures(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := newMemSchedule()
	store.add("ONE_DAY_BEFORE-1", "Broken", "first", now.Add(-time.Minute))
	store.add("ONE_DAY_BEFORE-2", "Appointment Reminder", "second", now.Add(-time.Minute))
	sender := &recordingSender{failTitle: "Broken"}
	d := newDispatcherUnderTest(store, sender, now)

	require.NoError(t, d.dispatchDue(context.Background()))

	assert.Equal(t, []string{"Appointment Reminder"}, sender.sent, "one failed send must not block the rest")
	assert.Empty(t, store.fireAt, "failed entries are dropped, not retried")
}
