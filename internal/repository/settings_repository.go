package repository

import (
	"context"
	"database/sql"

	"github.com/quai-antique/restaurant-reservation/internal/model"
)

// SettingsRepo reads and updates the singleton restaurant_settings row.
type SettingsRepo struct{ DB *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{DB: db} }

// Get returns the settings row, inserting the default ceiling of 100 when
// the table is empty so callers never observe a missing singleton.
func (r *SettingsRepo) Get(ctx context.Context) (model.RestaurantSettings, error) {
	var s model.RestaurantSettings
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, max_capacity FROM restaurant_settings LIMIT 1").Scan(&s.ID, &s.MaxCapacity)
	if err == sql.ErrNoRows {
		res, insErr := r.DB.ExecContext(ctx,
			"INSERT INTO restaurant_settings (max_capacity) VALUES (100)")
		if insErr != nil {
			return s, insErr
		}
		id, insErr := res.LastInsertId()
		if insErr != nil {
			return s, insErr
		}
		return model.RestaurantSettings{ID: uint64(id), MaxCapacity: 100}, nil
	}
	return s, err
}

// MaxCapacityTx reads the capacity ceiling inside a transaction so the
// capacity check and the reservation write see the same value.
func (r *SettingsRepo) MaxCapacityTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var cap int
	err := tx.QueryRowContext(ctx,
		"SELECT max_capacity FROM restaurant_settings LIMIT 1").Scan(&cap)
	if err == sql.ErrNoRows {
		return 100, nil
	}
	return cap, err
}

// UpdateCapacity sets a new seating ceiling.  Shrinking the ceiling does
// not touch existing reservations; it only constrains future bookings.
func (r *SettingsRepo) UpdateCapacity(ctx context.Context, maxCapacity int) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE restaurant_settings SET max_capacity=?", maxCapacity)
	return err
}
