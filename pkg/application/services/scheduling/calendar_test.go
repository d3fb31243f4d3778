package scheduling

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

func TestCalendar_FindSlot_EmptyCenter(t *testing.T) {
	cal := NewCalendar(8, 90)
	wc := mustWorkCenter("WC-1", 8, true)

	slot, err := cal.FindSlot(wc, 240, testNow, nil)
	require.NoError(t, err)

	assert.Equal(t, testNow, slot.Start)
	assert.Equal(t, testNow.Add(4*time.Hour), slot.End)
}

func TestCalendar_FindSlot_ClampsIntoWindow(t *testing.T) {
	cal := NewCalendar(8, 90)
	wc := mustWorkCenter("WC-1", 8, true)

	t.Run("before_window_start", func(t *testing.T) {
		early := testNow.Add(-2 * time.Hour) // 06:00
		slot, err := cal.FindSlot(wc, 60, early, nil)
		require.NoError(t, err)
		assert.Equal(t, testNow, slot.Start)
	})

	t.Run("after_window_end", func(t *testing.T) {
		late := testNow.Add(9 * time.Hour) // 17:00, window ended 16:00
		slot, err := cal.FindSlot(wc, 60, late, nil)
		require.NoError(t, err)
		assert.Equal(t, testNow.AddDate(0, 0, 1), slot.Start)
	})
}

func TestCalendar_FindSlot_AdvancesPastBookings(t *testing.T) {
	cal := NewCalendar(8, 90)
	wc := mustWorkCenter("WC-1", 8, true)

	bookings := []entities.Booking{
		booking("WC-1", testNow, 120),                    // 08:00-10:00
		booking("WC-1", testNow.Add(3*time.Hour), 60),    // 11:00-12:00
		booking("WC-2", testNow.Add(2*time.Hour), 8*60),  // other center, ignored
	}

	// A 60-minute gap exists at 10:00.
	slot, err := cal.FindSlot(wc, 60, testNow, bookings)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(2*time.Hour), slot.Start)

	// A 120-minute request does not fit between the bookings; it lands after
	// the second one.
	slot, err = cal.FindSlot(wc, 120, testNow, bookings)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(4*time.Hour), slot.Start)
}

func TestCalendar_FindSlot_RollsToNextDay(t *testing.T) {
	cal := NewCalendar(8, 90)
	wc := mustWorkCenter("WC-1", 8, true)

	// 13:00 plus 240 minutes would end at 17:00, past the 16:00 window end.
	afternoon := testNow.Add(5 * time.Hour)
	slot, err := cal.FindSlot(wc, 240, afternoon, nil)
	require.NoError(t, err)

	assert.Equal(t, testNow.AddDate(0, 0, 1), slot.Start)
	window := cal.WindowFor(slot.Start, wc)
	assert.False(t, slot.End.After(window.End), "slot must fit inside the working window")
}

func TestCalendar_FindSlot_DurationExceedsWindow(t *testing.T) {
	cal := NewCalendar(8, 90)
	wc := mustWorkCenter("WC-1", 8, true)

	_, err := cal.FindSlot(wc, 8*60+1, testNow, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrNoCapacityFound))
}

func TestCalendar_FindSlot_HorizonExhausted(t *testing.T) {
	cal := NewCalendar(8, 2)
	wc := mustWorkCenter("WC-1", 8, true)

	bookings := fullDayBookings("WC-1", 8, 4)

	_, err := cal.FindSlot(wc, 240, testNow, bookings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrNoCapacityFound))
}

func TestCalendar_FindSlot_Deterministic(t *testing.T) {
	cal := NewCalendar(8, 90)
	wc := mustWorkCenter("WC-1", 8, true)

	bookings := []entities.Booking{
		booking("WC-1", testNow.Add(time.Hour), 90),
		booking("WC-1", testNow, 30),
	}

	first, err := cal.FindSlot(wc, 120, testNow, bookings)
	require.NoError(t, err)
	second, err := cal.FindSlot(wc, 120, testNow, bookings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalendar_HorizonStart(t *testing.T) {
	cal := NewCalendar(8, 30)
	wc := mustWorkCenter("WC-1", 8, true)

	start := cal.HorizonStart(testNow, wc)
	assert.Equal(t, testNow.AddDate(0, 0, 30), start)
}
