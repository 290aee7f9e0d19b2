package repository

import (
	"context"
	"database/sql"

	"github.com/quai-antique/restaurant-reservation/internal/model"
)

// ServiceRepo provides read and admin-update access to the service
// catalog.  Services are seeded at startup and never deleted here.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

const serviceCols = "id,name,day_of_week,start_time,end_time"

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.Name, &s.DayOfWeek, &s.StartTime, &s.EndTime)
	return s, err
}

// List returns the full catalog ordered by name then weekday.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+serviceCols+" FROM services ORDER BY name, day_of_week")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListForDay returns the services active on one weekday, optionally
// filtered by name.  Ordering follows the catalog (name ascending) so the
// availability response is stable.
func (r *ServiceRepo) ListForDay(ctx context.Context, dayOfWeek uint8, name string) ([]model.Service, error) {
	q := "SELECT " + serviceCols + " FROM services WHERE day_of_week=?"
	args := []any{dayOfWeek}
	if name != "" {
		q += " AND name=?"
		args = append(args, name)
	}
	q += " ORDER BY name"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one service row.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	return scanService(r.DB.QueryRowContext(ctx,
		"SELECT "+serviceCols+" FROM services WHERE id=? LIMIT 1", id))
}

// UpdateWindow changes the start and end time of one service row.  The
// caller validates the "HH:MM" format; this only reports whether a row
// was actually touched.
func (r *ServiceRepo) UpdateWindow(ctx context.Context, id uint64, startTime, endTime string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE services SET start_time=?, end_time=? WHERE id=?",
		startTime, endTime, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish "no such service" from "same values": re-check existence
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM services WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}
