package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelKey(t *testing.T) {
	assert.Equal(t, "ONE_DAY_BEFORE-12", ChannelKey(KindOneDayBefore, 12))
	assert.Equal(t, "TWO_HOURS_BEFORE-12", ChannelKey(KindTwoHoursBefore, 12))
	assert.Equal(t, "CANCEL-7", ChannelKey(KindCancel, 7))
}

func TestChannelKeyIsStablePerAppointment(t *testing.T) {
	// Cancellation recomputes the key instead of looking it up, so the same
	// inputs must always produce the same key.
	assert.Equal(t, ChannelKey(KindOneDayBefore, 3), ChannelKey(KindOneDayBefore, 3))
	assert.NotEqual(t, ChannelKey(KindOneDayBefore, 3), ChannelKey(KindOneDayBefore, 4))
	assert.NotEqual(t, ChannelKey(KindOneDayBefore, 3), ChannelKey(KindTwoHoursBefore, 3))
}
