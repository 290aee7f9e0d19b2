package availability

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/quai-antique/restaurant-reservation/internal/model"
)

func lunchService() model.Service {
    return model.Service{ID: 3, Name: "lunch", DayOfWeek: 2, StartTime: "12:00", EndTime: "14:00"}
}

func TestRemaining(t *testing.T) {
    assert.Equal(t, 100, Remaining(0, 100))
    assert.Equal(t, 4, Remaining(96, 100))
    assert.Equal(t, 0, Remaining(100, 100))
    // ceiling lowered below existing bookings: clamped, never negative
    assert.Equal(t, 0, Remaining(120, 100))
}

func TestFits(t *testing.T) {
    assert.True(t, Fits(0, 10, 10))
    assert.True(t, Fits(6, 4, 10))  // exactly at the ceiling
    assert.False(t, Fits(6, 5, 10)) // one over
    assert.False(t, Fits(10, 1, 10))
    assert.True(t, Fits(0, 1, 1))
}

func TestForServiceEmptyLedger(t *testing.T) {
    sa, err := ForService(lunchService(), map[string]int{}, 100, 4)
    require.NoError(t, err)
    assert.Equal(t, "lunch", sa.Service)
    assert.Equal(t, uint64(3), sa.ServiceID)
    require.Len(t, sa.Slots, 9)
    for _, slot := range sa.Slots {
        assert.True(t, slot.Available, "slot %s", slot.Time)
        assert.Equal(t, 0, slot.Reserved, "slot %s", slot.Time)
        assert.Equal(t, 100, slot.Remaining, "slot %s", slot.Time)
    }
}

func TestForServiceCommittedTotals(t *testing.T) {
    committed := map[string]int{
        "12:30": 96,
        "13:00": 100,
    }
    sa, err := ForService(lunchService(), committed, 100, 5)
    require.NoError(t, err)

    byTime := make(map[string]SlotAvailability, len(sa.Slots))
    for _, slot := range sa.Slots {
        byTime[slot.Time] = slot
    }

    // 96 committed leaves 4 seats: a party of 5 does not fit.
    assert.False(t, byTime["12:30"].Available)
    assert.Equal(t, 96, byTime["12:30"].Reserved)
    assert.Equal(t, 4, byTime["12:30"].Remaining)

    // Full slot.
    assert.False(t, byTime["13:00"].Available)
    assert.Equal(t, 0, byTime["13:00"].Remaining)

    // Untouched slot.
    assert.True(t, byTime["12:00"].Available)
    assert.Equal(t, 100, byTime["12:00"].Remaining)
}

func TestForServiceExactFitBoundary(t *testing.T) {
    sa, err := ForService(lunchService(), map[string]int{"12:00": 96}, 100, 4)
    require.NoError(t, err)
    assert.True(t, sa.Slots[0].Available)
    assert.Equal(t, 4, sa.Slots[0].Remaining)
}

func TestForServiceRemainingClampedAtZero(t *testing.T) {
    // An oversubscribed slot (ceiling lowered after bookings were made)
    // reports zero remaining, never negative.
    sa, err := ForService(lunchService(), map[string]int{"12:00": 120}, 100, 2)
    require.NoError(t, err)
    assert.False(t, sa.Slots[0].Available)
    assert.Equal(t, 120, sa.Slots[0].Reserved)
    assert.Equal(t, 0, sa.Slots[0].Remaining)
}

func TestForServiceInvalidWindow(t *testing.T) {
    svc := lunchService()
    svc.StartTime = "noon"
    _, err := ForService(svc, nil, 100, 2)
    assert.Error(t, err)
}
