package availability

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
    cases := []struct {
        in      string
        want    int
        wantErr bool
    }{
        {in: "00:00", want: 0},
        {in: "12:00", want: 720},
        {in: "23:59", want: 1439},
        {in: "24:00", wantErr: true},
        {in: "12:60", wantErr: true},
        {in: "9:00", wantErr: true},
        {in: "12:0", wantErr: true},
        {in: "12-00", wantErr: true},
        {in: "", wantErr: true},
        {in: "ab:cd", wantErr: true},
    }
    for _, tc := range cases {
        got, err := ParseClock(tc.in)
        if tc.wantErr {
            assert.Error(t, err, "input %q", tc.in)
            continue
        }
        require.NoError(t, err, "input %q", tc.in)
        assert.Equal(t, tc.want, got, "input %q", tc.in)
    }
}

func TestFormatClock(t *testing.T) {
    assert.Equal(t, "00:00", FormatClock(0))
    assert.Equal(t, "09:05", FormatClock(545))
    assert.Equal(t, "23:59", FormatClock(1439))
}

func TestGenerateSlotsLunchWindow(t *testing.T) {
    got, err := GenerateSlots("12:00", "14:00")
    require.NoError(t, err)
    want := []string{"12:00", "12:15", "12:30", "12:45", "13:00", "13:15", "13:30", "13:45", "14:00"}
    assert.Equal(t, want, got)
}

func TestGenerateSlotsMisalignedEnd(t *testing.T) {
    // A closing time off the 15-minute grid is still offered as the last
    // bookable slot.
    got, err := GenerateSlots("19:00", "21:40")
    require.NoError(t, err)
    require.NotEmpty(t, got)
    assert.Equal(t, "19:00", got[0])
    assert.Equal(t, "21:40", got[len(got)-1])
    assert.Equal(t, "21:30", got[len(got)-2])
}

func TestGenerateSlotsEqualEndpoints(t *testing.T) {
    got, err := GenerateSlots("19:00", "19:00")
    require.NoError(t, err)
    assert.Equal(t, []string{"19:00"}, got)
}

func TestGenerateSlotsInvertedWindow(t *testing.T) {
    got, err := GenerateSlots("14:00", "12:00")
    require.NoError(t, err)
    assert.Empty(t, got)
}

func TestGenerateSlotsInvalidInput(t *testing.T) {
    _, err := GenerateSlots("lunch", "14:00")
    assert.Error(t, err)
    _, err = GenerateSlots("12:00", "25:00")
    assert.Error(t, err)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
    a, err := GenerateSlots("19:00", "21:30")
    require.NoError(t, err)
    b, err := GenerateSlots("19:00", "21:30")
    require.NoError(t, err)
    assert.Equal(t, a, b)
    assert.Len(t, a, 11)
}
