package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

func newTestAllocator() *Allocator {
	return NewAllocator(NewCalendar(8, 90), nil)
}

func TestAllocator_SequencedOperationsNeverOverlap(t *testing.T) {
	alloc := newTestAllocator()
	ops := []entities.Operation{
		mustOperation("OP-1", 1, 240),
		mustOperation("OP-2", 2, 60),
		mustOperation("OP-3", 3, 180),
	}
	centers := []*entities.WorkCenter{mustWorkCenter("WC-1", 8, true)}

	assignments, warnings := alloc.Allocate("J1", ops, centers, nil, testNow)
	require.Len(t, assignments, 3)
	assert.Empty(t, warnings)

	for i := 1; i < len(assignments); i++ {
		prev, cur := assignments[i-1], assignments[i]
		assert.False(t, cur.Interval.Start.Before(prev.Interval.End),
			"operation %s starts before %s ends", cur.OperationID, prev.OperationID)
	}
}

func TestAllocator_LeastLoadedPool(t *testing.T) {
	alloc := newTestAllocator()
	op := mustOperation("OP-1", 1, 120)
	centers := []*entities.WorkCenter{
		mustWorkCenter("WC-1", 8, true),
		mustWorkCenter("WC-2", 8, true),
	}

	t.Run("busy_center_avoided", func(t *testing.T) {
		committed := fullDayBookings("WC-1", 8, 1)
		assignments, warnings := alloc.Allocate("J1", []entities.Operation{op}, centers, committed, testNow)

		require.Len(t, assignments, 1)
		assert.Empty(t, warnings)
		assert.Equal(t, entities.WorkCenterID("WC-2"), assignments[0].WorkCenterID)
		assert.Equal(t, testNow, assignments[0].Interval.Start)
	})

	t.Run("tie_breaks_on_smallest_id", func(t *testing.T) {
		assignments, _ := alloc.Allocate("J1", []entities.Operation{op}, centers, nil, testNow)
		assert.Equal(t, entities.WorkCenterID("WC-1"), assignments[0].WorkCenterID)
	})
}

func TestAllocator_SkillMatching(t *testing.T) {
	alloc := newTestAllocator()
	op := mustOperation("OP-1", 1, 60)
	op.SkillRequirements = []string{"turning"}

	centers := []*entities.WorkCenter{
		mustWorkCenter("WC-1", 8, true, "milling"),
		mustWorkCenter("WC-2", 8, true, "turning", "milling"),
	}

	assignments, warnings := alloc.Allocate("J1", []entities.Operation{op}, centers, nil, testNow)
	require.Len(t, assignments, 1)
	assert.Empty(t, warnings)
	assert.Equal(t, entities.WorkCenterID("WC-2"), assignments[0].WorkCenterID)
}

func TestAllocator_NoCapableCenterDegrades(t *testing.T) {
	alloc := newTestAllocator()
	op := mustOperation("OP-1", 1, 60)
	op.SkillRequirements = []string{"grinding"}

	centers := []*entities.WorkCenter{mustWorkCenter("WC-1", 8, true, "milling")}

	assignments, warnings := alloc.Allocate("J1", []entities.Operation{op}, centers, nil, testNow)

	// the run never aborts: a best-effort placement at the horizon boundary
	require.Len(t, assignments, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, entities.ConflictCapacityExceeded, warnings[0].Type)
	assert.Equal(t, entities.SeverityCritical, warnings[0].Severity)
	assert.Equal(t, testNow.AddDate(0, 0, 90), assignments[0].Interval.Start)
}

func TestAllocator_PreferredWorkCenter(t *testing.T) {
	alloc := newTestAllocator()
	centers := []*entities.WorkCenter{
		mustWorkCenter("WC-1", 8, true),
		mustWorkCenter("WC-2", 8, true),
	}

	t.Run("honored_when_active", func(t *testing.T) {
		op := mustOperation("OP-1", 1, 60)
		op.PreferredWorkCenterID = "WC-2"

		assignments, warnings := alloc.Allocate("J1", []entities.Operation{op}, centers, nil, testNow)
		require.Len(t, assignments, 1)
		assert.Empty(t, warnings)
		assert.Equal(t, entities.WorkCenterID("WC-2"), assignments[0].WorkCenterID)
	})

	t.Run("unknown_falls_back_with_warning", func(t *testing.T) {
		op := mustOperation("OP-1", 1, 60)
		op.PreferredWorkCenterID = "WC-99"

		assignments, warnings := alloc.Allocate("J1", []entities.Operation{op}, centers, nil, testNow)
		require.Len(t, assignments, 1)
		require.Len(t, warnings, 1)
		assert.Equal(t, entities.ConflictWorkCenterUnavailable, warnings[0].Type)
		assert.Equal(t, entities.WorkCenterID("WC-1"), assignments[0].WorkCenterID)
	})

	t.Run("inactive_falls_back_with_warning", func(t *testing.T) {
		inactive := mustWorkCenter("WC-3", 8, false)
		op := mustOperation("OP-1", 1, 60)
		op.PreferredWorkCenterID = "WC-3"

		assignments, warnings := alloc.Allocate("J1", []entities.Operation{op},
			append(centers, inactive), nil, testNow)
		require.Len(t, assignments, 1)
		require.Len(t, warnings, 1)
		assert.Equal(t, entities.ConflictWorkCenterUnavailable, warnings[0].Type)
		assert.NotEqual(t, entities.WorkCenterID("WC-3"), assignments[0].WorkCenterID)
	})
}

func TestAllocator_NewBookingsVisibleAcrossCenters(t *testing.T) {
	// OP-2 runs on a different center but must still wait for OP-1's end.
	alloc := newTestAllocator()
	op1 := mustOperation("OP-1", 1, 240)
	op1.PreferredWorkCenterID = "WC-1"
	op2 := mustOperation("OP-2", 2, 60)
	op2.PreferredWorkCenterID = "WC-2"

	centers := []*entities.WorkCenter{
		mustWorkCenter("WC-1", 8, true),
		mustWorkCenter("WC-2", 8, true),
	}

	assignments, warnings := alloc.Allocate("J1", []entities.Operation{op1, op2}, centers, nil, testNow)
	require.Len(t, assignments, 2)
	assert.Empty(t, warnings)
	assert.Equal(t, testNow.Add(4*time.Hour), assignments[1].Interval.Start)
}
