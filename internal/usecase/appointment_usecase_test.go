package usecase

import (
	"context"
	"io"
	"sort"
	"testing"
	"time"

	"dentalcare-booking/internal/delivery/dto"
	"dentalcare-booking/internal/domain/entity"
	"dentalcare-booking/internal/notification"
	"dentalcare-booking/internal/service"

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

// memAppointmentRepo is an in-memory AppointmentRepository.
type memAppointmentRepo struct {
	rows   map[int]entity.Appointment
	nextID int
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{rows: make(map[int]entity.Appointment), nextID: 1}
}

func (r *memAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	appointment.ID = r.nextID
	r.nextID++
	r.rows[appointment.ID] = *appointment
	return nil
}

func (r *memAppointmentRepo) FindByID(_ context.Context, id int) (*entity.Appointment, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *memAppointmentRepo) FindAll(_ context.Context) ([]entity.Appointment, error) {
	all := make([]entity.Appointment, 0, len(r.rows))
	for _, row := range r.rows {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.Before(all[j].Date)
		}
		return all[i].Time < all[j].Time
	})
	return all, nil
}

func (r *memAppointmentRepo) Update(_ context.Context, appointment *entity.Appointment) error {
	r.rows[appointment.ID] = *appointment
	return nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id int, status entity.Status) error {
	row := r.rows[id]
	row.Status = status
	r.rows[id] = row
	return nil
}

func (r *memAppointmentRepo) IsSlotTaken(_ context.Context, date time.Time, slot string, excludeID int) (bool, error) {
	for _, row := range r.rows {
		if row.ID == excludeID || row.Status == entity.StatusCancelled {
			continue
		}
		if row.Date.Equal(date) && row.Time == slot {
			return true, nil
		}
	}
	return false, nil
}

type scheduledNotification struct {
	title   string
	message string
	fireAt  time.Time
}

type fakeChannel struct {
	scheduled map[string]scheduledNotification
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{scheduled: make(map[string]scheduledNotification)}
}

func (f *fakeChannel) CreateChannel(_ context.Context, _, _, _ string, _ notification.Importance, _ bool) error {
	return nil
}

func (f *fakeChannel) ScheduleAt(_ context.Context, channelID, title, message string, fireAt time.Time) error {
	f.scheduled[channelID] = scheduledNotification{title: title, message: message, fireAt: fireAt}
	return nil
}

func (f *fakeChannel) Cancel(_ context.Context, channelID string) error {
	delete(f.scheduled, channelID)
	return nil
}

func newTestUsecase(now time.Time) (AppointmentUsecase, *memAppointmentRepo, *fakeChannel) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := newMemAppointmentRepo()
	channel := newFakeChannel()
	clk := fixedClock{now}
	reminders := service.NewReminderService(channel, clk, log)
	return NewAppointmentUsecase(log, repo, reminders, clk), repo, channel
}

func createReq(date, slot string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		Name:    "Jordan Lee",
		Contact: "0812345678",
		Date:    date,
		Time:    slot,
		Reason:  "Checkup",
	}
}

func updateReq(date, slot string) *dto.UpdateAppointmentRequest {
	return &dto.UpdateAppointmentRequest{
		Name:    "Jordan Lee",
		Contact: "0812345678",
		Date:    date,
		Time:    slot,
		Reason:  "Checkup",
	}
}

var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)

func TestCreateAppointment(t *testing.T) {
	uc, repo, channel := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "2026-03-14", resp.Date)
	assert.Equal(t, "10:00", resp.Time)

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPending, stored.Status)

	// Slot is four days out, both reminders land in the future.
	assert.Len(t, channel.scheduled, 2)
}

func TestCreateRejectsDoubleBooking(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	_, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Same slot on another day is fine.
	_, err = uc.Create(context.Background(), createReq("2026-03-15", "10:00"))
	assert.NoError(t, err)

	// Another slot on the same day is fine.
	_, err = uc.Create(context.Background(), createReq("2026-03-14", "11:00"))
	assert.NoError(t, err)
}

func TestCreateRejectsInvalidSlot(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	_, err := uc.Create(context.Background(), createReq("2026-03-14", "09:30"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = uc.Create(context.Background(), createReq("14-03-2026", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	first, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	_, err = uc.ChangeStatus(context.Background(), first.ID, entity.StatusCancelled, false)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	assert.NoError(t, err, "a cancelled appointment must release its slot")
}

func TestUpdateKeepsOwnSlot(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	// Editing without moving must not collide with itself.
	updated, err := uc.Update(context.Background(), resp.ID, updateReq("2026-03-14", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.Time)
}

func TestUpdateRejectsOccupiedSlot(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	_, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), createReq("2026-03-14", "11:00"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), second.ID, updateReq("2026-03-14", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdateMovesReminders(t *testing.T) {
	uc, _, channel := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), resp.ID, updateReq("2026-03-20", "15:00"))
	require.NoError(t, err)

	require.Len(t, channel.scheduled, 2)
	newStart := time.Date(2026, 3, 20, 15, 0, 0, 0, time.Local)
	oneDay := channel.scheduled[notification.ChannelKey(notification.KindOneDayBefore, resp.ID)]
	assert.Equal(t, newStart.Add(-24*time.Hour), oneDay.fireAt, "reminder must track the new slot")
	twoHours := channel.scheduled[notification.ChannelKey(notification.KindTwoHoursBefore, resp.ID)]
	assert.Equal(t, newStart.Add(-2*time.Hour), twoHours.fireAt)
}

func TestUpdateRejectsTerminalAppointments(t *testing.T) {
	uc, repo, channel := newTestUsecase(testNow)

	cancelled, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)
	_, err = uc.ChangeStatus(context.Background(), cancelled.ID, entity.StatusCancelled, false)
	require.NoError(t, err)
	require.Empty(t, channel.scheduled)

	_, err = uc.Update(context.Background(), cancelled.ID, updateReq("2026-03-20", "15:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotEditable)
	assert.Empty(t, channel.scheduled, "editing a cancelled row must not bring reminders back")

	stored, err := repo.FindByID(context.Background(), cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, stored.Status)
	assert.Equal(t, "10:00", stored.Time, "rejected edit must not write")

	finished, err := uc.Create(context.Background(), createReq("2026-03-14", "11:00"))
	require.NoError(t, err)
	_, err = uc.ChangeStatus(context.Background(), finished.ID, entity.StatusApproved, false)
	require.NoError(t, err)
	_, err = uc.ChangeStatus(context.Background(), finished.ID, entity.StatusDone, false)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), finished.ID, updateReq("2026-03-20", "16:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotEditable)

	// Approved rows are still live and may be rescheduled.
	approved, err := uc.Create(context.Background(), createReq("2026-03-14", "12:00"))
	require.NoError(t, err)
	_, err = uc.ChangeStatus(context.Background(), approved.ID, entity.StatusApproved, false)
	require.NoError(t, err)
	_, err = uc.Update(context.Background(), approved.ID, updateReq("2026-03-20", "17:00"))
	assert.NoError(t, err)
}

func TestUpdateMissingAppointment(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	_, err := uc.Update(context.Background(), 42, updateReq("2026-03-14", "10:00"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestChangeStatusLifecycle(t *testing.T) {
	uc, repo, channel := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)
	require.Len(t, channel.scheduled, 2)

	approved, err := uc.ChangeStatus(context.Background(), resp.ID, entity.StatusApproved, false)
	require.NoError(t, err)
	assert.Equal(t, "Approved", approved.Status)
	assert.Len(t, channel.scheduled, 2, "approval keeps reminders in place")

	done, err := uc.ChangeStatus(context.Background(), resp.ID, entity.StatusDone, false)
	require.NoError(t, err)
	assert.Equal(t, "Done", done.Status)
	assert.Empty(t, channel.scheduled, "completion clears reminders")

	// Done is terminal.
	_, err = uc.ChangeStatus(context.Background(), resp.ID, entity.StatusCancelled, false)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, stored.Status, "rejected transition must not write")
}

func TestChangeStatusCancellationNotice(t *testing.T) {
	uc, _, channel := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	_, err = uc.ChangeStatus(context.Background(), resp.ID, entity.StatusCancelled, true)
	require.NoError(t, err)

	cancelKey := notification.ChannelKey(notification.KindCancel, resp.ID)
	require.Contains(t, channel.scheduled, cancelKey)
	notice := channel.scheduled[cancelKey]
	assert.Equal(t, "Your appointment scheduled for 10:00 has been cancelled. Please reschedule as needed.", notice.message)
	assert.Len(t, channel.scheduled, 1, "reminders are gone, only the notice remains")
}

func TestChangeStatusSilentCancellation(t *testing.T) {
	uc, _, channel := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	_, err = uc.ChangeStatus(context.Background(), resp.ID, entity.StatusCancelled, false)
	require.NoError(t, err)
	assert.Empty(t, channel.scheduled, "self cancellation posts no notice")
}

func TestChangeStatusMissingAppointment(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	_, err := uc.ChangeStatus(context.Background(), 42, entity.StatusApproved, false)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetAppointment(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	resp, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	got, err := uc.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	_, err = uc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListWithDisplayStatusFilter(t *testing.T) {
	uc, _, _ := newTestUsecase(testNow)

	// testNow is 2026-03-10 08:00, so a slot on 2026-03-09 has lapsed.
	lapsed, err := uc.Create(context.Background(), createReq("2026-03-09", "10:00"))
	require.NoError(t, err)
	upcoming, err := uc.Create(context.Background(), createReq("2026-03-14", "10:00"))
	require.NoError(t, err)

	all, err := uc.List(context.Background(), StatusFilterAll)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	expired, err := uc.List(context.Background(), "Expired")
	require.NoError(t, err)
	require.Equal(t, 1, expired.Total)
	assert.Equal(t, lapsed.ID, expired.Appointments[0].ID)
	assert.Equal(t, "Expired", expired.Appointments[0].Status)

	pending, err := uc.List(context.Background(), "Pending")
	require.NoError(t, err)
	require.Equal(t, 1, pending.Total)
	assert.Equal(t, upcoming.ID, pending.Appointments[0].ID)
}
