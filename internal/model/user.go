package model

import "time"

// User is a guest profile row in the `users` table.  A profile belongs to
// exactly one account and is created lazily: registering creates it
// immediately, while an account that books a table before ever filling in
// a profile gets a placeholder row at reservation time.
//
// Fields:
//  ID            – primary key identifier.
//  AccountID     – owning account.
//  FirstName     – guest first name.
//  LastName      – guest last name.
//  DefaultGuests – party size pre-filled in the booking form.
//  Allergies     – free-text allergy notes carried onto reservations.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
    ID            uint64    // users.id
    AccountID     uint64    // users.account_id
    FirstName     string    // users.first_name
    LastName      string    // users.last_name
    DefaultGuests uint32    // users.default_guests
    Allergies     *string   // users.allergies (nullable)
    CreatedAt     time.Time // users.created_at
    UpdatedAt     time.Time // users.updated_at
}
