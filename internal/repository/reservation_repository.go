package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/quai-antique/restaurant-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and the
// capacity ledger reads the booking flow depends on.  The ledger is never
// persisted on its own: it is always derived fresh from the reservations
// table, so there is exactly one source of truth for committed seats.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open the transaction
// that spans the capacity check and the write.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// SumCommittedTx returns the committed total for one exact
// (date, time, service) key: the sum of number_of_people over every
// reservation sharing the key, or 0 when none match.  excludeID, when
// non-zero, leaves one reservation out of the sum; edits pass their own id
// so a reservation never competes with itself for seats.
//
// The read runs FOR UPDATE inside the caller's transaction.  With the
// composite slot index, InnoDB locks the scanned index range including the
// gap, so a concurrent insert into the same slot blocks until this
// transaction finishes — the check and the write behave as one atomic step.
func (r *ReservationRepo) SumCommittedTx(ctx context.Context, tx *sql.Tx, date, timeOfDay string, serviceID, excludeID uint64) (int, error) {
	q := `SELECT COALESCE(SUM(number_of_people), 0)
	      FROM reservations
	      WHERE reservation_date = ? AND reservation_time = ? AND service_id = ?`
	args := []any{date, timeOfDay, serviceID}
	if excludeID != 0 {
		q += " AND id <> ?"
		args = append(args, excludeID)
	}
	q += " FOR UPDATE"
	var committed int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&committed); err != nil {
		return 0, err
	}
	return committed, nil
}

// CommittedByTime returns committed totals for every occupied slot of one
// service on one date, keyed by the "HH:MM" label.  This is the read-only
// projection behind the availability view; it takes no locks and is an
// advisory snapshot by design.
func (r *ReservationRepo) CommittedByTime(ctx context.Context, date string, serviceID uint64) (map[string]int, error) {
	const q = `SELECT reservation_time, SUM(number_of_people)
	           FROM reservations
	           WHERE reservation_date = ? AND service_id = ?
	           GROUP BY reservation_time`
	rows, err := r.db.QueryContext(ctx, q, date, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var t string
		var sum int
		if err := rows.Scan(&t, &sum); err != nil {
			return nil, err
		}
		out[t] = sum
	}
	return out, rows.Err()
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided record.  The caller must commit or rollback the transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (user_id, service_id, reservation_date, reservation_time, number_of_people, allergies)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.ServiceID, res.ReservationDate, res.ReservationTime, res.NumberOfPeople, res.Allergies)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row to populate the DB-assigned timestamps
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByIDTx loads one reservation inside a transaction, locking the row so
// ownership checks and the subsequent update or delete act on a stable
// view.  Returns sql.ErrNoRows when the reservation does not exist.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	const q = `SELECT id, user_id, service_id, reservation_date, reservation_time,
	                  number_of_people, allergies, created_at, updated_at
	           FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.UserID, &res.ServiceID, &res.ReservationDate, &res.ReservationTime,
		&res.NumberOfPeople, &res.Allergies, &res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

// UpdateTx overwrites every mutable field of a reservation within the
// given transaction.  The caller has already re-checked capacity on the
// new slot key.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET reservation_date = ?, reservation_time = ?, service_id = ?,
	               number_of_people = ?, allergies = ?
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		res.ReservationDate, res.ReservationTime, res.ServiceID,
		res.NumberOfPeople, res.Allergies, res.ID)
	return err
}

// DeleteTx removes a reservation row.  Deletion only frees seats, so no
// capacity check accompanies it.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// ReservationDetail is a reservation joined with its service window, as
// returned to guests listing their own bookings.
type ReservationDetail struct {
	ID              uint64  `json:"id"`
	ServiceID       uint64  `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	ServiceStart    string  `json:"start_time"`
	ServiceEnd      string  `json:"end_time"`
	ReservationDate string  `json:"reservation_date"`
	ReservationTime string  `json:"reservation_time"`
	NumberOfPeople  int     `json:"number_of_people"`
	Allergies       *string `json:"allergies,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ListByProfile returns all reservations belonging to one guest profile,
// newest dining date first.  When no reservations exist an empty slice is
// returned.
func (r *ReservationRepo) ListByProfile(ctx context.Context, profileID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.service_id, s.name, s.start_time, s.end_time,
	                  r.reservation_date, r.reservation_time, r.number_of_people, r.allergies, r.created_at
	           FROM reservations r
	           JOIN services s ON s.id = r.service_id
	           WHERE r.user_id = ?
	           ORDER BY r.reservation_date DESC, r.reservation_time DESC`
	rows, err := r.db.QueryContext(ctx, q, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var createdAt time.Time
		if err := rows.Scan(
			&d.ID, &d.ServiceID, &d.ServiceName, &d.ServiceStart, &d.ServiceEnd,
			&d.ReservationDate, &d.ReservationTime, &d.NumberOfPeople, &d.Allergies, &createdAt,
		); err != nil {
			return nil, err
		}
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	return details, rows.Err()
}

// AdminReservationDetail extends ReservationDetail with the guest identity
// an administrator needs when managing the book.
type AdminReservationDetail struct {
	ReservationDetail
	UserID    uint64 `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ListAll returns every reservation joined with profile and account
// identity, optionally restricted to one dining date.  Ordered newest
// dining date first to match the admin dashboard.
func (r *ReservationRepo) ListAll(ctx context.Context, date string) ([]AdminReservationDetail, error) {
	q := `SELECT r.id, r.service_id, s.name, s.start_time, s.end_time,
	             r.reservation_date, r.reservation_time, r.number_of_people, r.allergies, r.created_at,
	             u.id, u.first_name, u.last_name, a.email
	      FROM reservations r
	      JOIN services s ON s.id = r.service_id
	      JOIN users u ON u.id = r.user_id
	      JOIN accounts a ON a.id = u.account_id`
	args := []any{}
	if date != "" {
		q += " WHERE r.reservation_date = ?"
		args = append(args, date)
	}
	q += " ORDER BY r.reservation_date DESC, r.reservation_time DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]AdminReservationDetail, 0)
	for rows.Next() {
		var d AdminReservationDetail
		var createdAt time.Time
		if err := rows.Scan(
			&d.ID, &d.ServiceID, &d.ServiceName, &d.ServiceStart, &d.ServiceEnd,
			&d.ReservationDate, &d.ReservationTime, &d.NumberOfPeople, &d.Allergies, &createdAt,
			&d.UserID, &d.FirstName, &d.LastName, &d.Email,
		); err != nil {
			return nil, err
		}
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	return details, rows.Err()
}
