package repository

import (
	"context"
	"database/sql"

	"github.com/quai-antique/restaurant-reservation/internal/model"
)

// ProfileRepo provides access to guest profiles in the users table.  A
// profile is the entity reservations belong to; it is keyed one-to-one to
// an account.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// Create inserts a profile row for an account and returns its ID.
func (r *ProfileRepo) Create(ctx context.Context, accountID uint64, firstName, lastName string, defaultGuests uint32, allergies *string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (account_id, first_name, last_name, default_guests, allergies) VALUES (?,?,?,?,?)",
		accountID, firstName, lastName, defaultGuests, allergies)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByAccount fetches the profile belonging to an account.  Returns
// sql.ErrNoRows when the account has no profile yet.
func (r *ProfileRepo) GetByAccount(ctx context.Context, accountID uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,account_id,first_name,last_name,default_guests,allergies,created_at,updated_at FROM users WHERE account_id=? LIMIT 1",
		accountID).Scan(&u.ID, &u.AccountID, &u.FirstName, &u.LastName, &u.DefaultGuests, &u.Allergies, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Update overwrites the mutable profile fields for an account.
func (r *ProfileRepo) Update(ctx context.Context, accountID uint64, firstName, lastName string, defaultGuests uint32, allergies *string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET first_name=?, last_name=?, default_guests=?, allergies=? WHERE account_id=?",
		firstName, lastName, defaultGuests, allergies, accountID)
	return err
}

// EnsureTx returns the profile ID for an account, creating a placeholder
// row inside the given transaction when none exists.  Booking a table must
// not fail just because the guest never filled in their profile, so the
// reservation flow calls this explicitly before inserting.  The operation
// is idempotent: a second call inside the same transaction (or any later
// one) finds the row created by the first.
func (r *ProfileRepo) EnsureTx(ctx context.Context, tx *sql.Tx, accountID uint64) (uint64, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM users WHERE account_id=? LIMIT 1", accountID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (account_id, first_name, last_name) VALUES (?,?,?)",
		accountID, "Guest", "User")
	if err != nil {
		// Two first bookings for the same account can race to this
		// insert; the loser hits the unique account_id key.  The row
		// exists by then, so re-read it instead of failing the booking.
		if isDuplicateKey(err) {
			if err := tx.QueryRowContext(ctx,
				"SELECT id FROM users WHERE account_id=? LIMIT 1", accountID).Scan(&id); err != nil {
				return 0, err
			}
			return id, nil
		}
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}
