package model

import "time"

// Reservation commits a party of guests to a single time slot of a
// service, as stored in the `reservations` table.  Each row is an
// independent commitment: rows are never merged or split, and the sum of
// NumberOfPeople over all rows sharing a (date, time, service) key must
// never exceed the restaurant's max capacity.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – profile that owns the booking.
//  ServiceID       – service the slot belongs to.
//  ReservationDate – calendar date ("YYYY-MM-DD").
//  ReservationTime – time-of-day slot label ("HH:MM").
//  NumberOfPeople  – committed party size (positive).
//  Allergies       – optional free-text allergy notes.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
    ID              uint64    // reservations.id
    UserID          uint64    // reservations.user_id
    ServiceID       uint64    // reservations.service_id
    ReservationDate string    // reservations.reservation_date
    ReservationTime string    // reservations.reservation_time
    NumberOfPeople  int       // reservations.number_of_people
    Allergies       *string   // reservations.allergies (nullable)
    CreatedAt       time.Time // reservations.created_at
    UpdatedAt       time.Time // reservations.updated_at
}
