package availability

import (
    "github.com/quai-antique/restaurant-reservation/internal/model"
)

// SlotAvailability is the per-slot view returned by the availability
// endpoint.  Reserved is the committed total at snapshot time, Remaining
// is clamped at zero, and Available answers "does the requested party
// fit".  The view is advisory only: nothing is held, and a slot reported
// available can fill up before the client books it.
type SlotAvailability struct {
    Time      string `json:"time"`
    Available bool   `json:"available"`
    Reserved  int    `json:"reserved"`
    Remaining int    `json:"remaining"`
}

// ServiceAvailability groups the slots of one service, preserving
// generation order.
type ServiceAvailability struct {
    Service   string             `json:"service"`
    ServiceID uint64             `json:"serviceId"`
    Slots     []SlotAvailability `json:"slots"`
}

// ForService expands a service window into slots and marks each one
// against the committed totals.  committed maps "HH:MM" labels to the sum
// of party sizes already booked at that slot; absent keys mean zero.
func ForService(svc model.Service, committed map[string]int, maxCapacity, partySize int) (ServiceAvailability, error) {
    labels, err := GenerateSlots(svc.StartTime, svc.EndTime)
    if err != nil {
        return ServiceAvailability{}, err
    }
    out := ServiceAvailability{
        Service:   svc.Name,
        ServiceID: svc.ID,
        Slots:     make([]SlotAvailability, 0, len(labels)),
    }
    for _, t := range labels {
        reserved := committed[t]
        out.Slots = append(out.Slots, SlotAvailability{
            Time:      t,
            Available: maxCapacity-reserved >= partySize,
            Reserved:  reserved,
            Remaining: Remaining(reserved, maxCapacity),
        })
    }
    return out, nil
}

// Remaining reports the free seats left in a slot holding committed
// guests, clamped at zero.  A slot can sit above the ceiling when the
// ceiling was lowered after bookings were made; it then reports zero
// rather than a negative count.
func Remaining(committed, maxCapacity int) int {
    if r := maxCapacity - committed; r > 0 {
        return r
    }
    return 0
}

// Fits reports whether adding partySize guests to a slot already holding
// committed guests stays within maxCapacity.  It is the single place the
// capacity invariant comparison lives; the reservation handlers and the
// availability view both call it.
func Fits(committed, partySize, maxCapacity int) bool {
    return committed+partySize <= maxCapacity
}
