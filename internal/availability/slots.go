// Package availability contains the pure booking arithmetic: turning a
// service window into discrete 15-minute slots and combining committed
// totals with the capacity ceiling into a per-slot availability view.
// Nothing in this package touches the database or the clock.
package availability

import (
    "fmt"
    "strconv"
    "strings"
)

// SlotStride is the fixed distance between bookable times within a
// service window, in minutes.
const SlotStride = 15

// ParseClock converts a minute-granularity "HH:MM" label on a 24h clock
// into minutes since midnight.  It rejects anything that is not exactly
// two digits, a colon and two digits within range.
func ParseClock(s string) (int, error) {
    parts := strings.Split(s, ":")
    if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
        return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
    }
    h, err := strconv.Atoi(parts[0])
    if err != nil || h < 0 || h > 23 {
        return 0, fmt.Errorf("invalid hour in %q", s)
    }
    m, err := strconv.Atoi(parts[1])
    if err != nil || m < 0 || m > 59 {
        return 0, fmt.Errorf("invalid minute in %q", s)
    }
    return h*60 + m, nil
}

// FormatClock renders minutes since midnight back into a zero-padded
// "HH:MM" label.
func FormatClock(min int) string {
    return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// GenerateSlots produces the ordered bookable time labels between start
// and end inclusive, stepping by SlotStride.  When end is not aligned to
// the stride it is still appended as the final label, so an admin who
// closes a service at 21:40 sees 21:40 offered after 21:30.  A window
// whose start lies after its end is treated as a misconfiguration and
// yields no slots; equal endpoints yield exactly one.  The output depends
// only on the inputs.
func GenerateSlots(start, end string) ([]string, error) {
    s, err := ParseClock(start)
    if err != nil {
        return nil, err
    }
    e, err := ParseClock(end)
    if err != nil {
        return nil, err
    }
    if s > e {
        return []string{}, nil
    }
    slots := make([]string, 0, (e-s)/SlotStride+1)
    for cur := s; cur < e; cur += SlotStride {
        slots = append(slots, FormatClock(cur))
    }
    slots = append(slots, FormatClock(e))
    return slots, nil
}
