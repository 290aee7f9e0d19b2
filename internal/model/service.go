package model

// Service is a recurring dining window (e.g. "lunch", "dinner") for one
// day of the week, as stored in the `services` table.  Times are
// minute-granular "HH:MM" strings on a 24h clock; both endpoints are
// bookable.  Identity is (name, day_of_week); the surrogate id is what
// reservations reference.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – service name, lower case.
//  DayOfWeek – 0=Sunday .. 6=Saturday, matching time.Weekday.
//  StartTime – first bookable time of day ("HH:MM").
//  EndTime   – last bookable time of day ("HH:MM").
type Service struct {
    ID        uint64 `json:"id"`          // services.id
    Name      string `json:"name"`        // services.name
    DayOfWeek uint8  `json:"day_of_week"` // services.day_of_week
    StartTime string `json:"start_time"`  // services.start_time
    EndTime   string `json:"end_time"`    // services.end_time
}

// RestaurantSettings is the singleton row in `restaurant_settings`.
// MaxCapacity is the aggregate seating ceiling applied to every
// (date, time, service) slot; it defaults to 100 when uninitialised.
type RestaurantSettings struct {
    ID          uint64 `json:"id"`           // restaurant_settings.id
    MaxCapacity int    `json:"max_capacity"` // restaurant_settings.max_capacity
}
