package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/quai-antique/restaurant-reservation/internal/model"
	"github.com/quai-antique/restaurant-reservation/internal/utils"
)

// AccountRepo provides access to the accounts table.  Accounts are the
// login identities; dining profiles live in ProfileRepo.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// Create inserts an account with a bcrypt-hashed password and returns its ID.
func (r *AccountRepo) Create(ctx context.Context, email, password, accessLevel string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (email, password_hash, access_level) VALUES (?,?,?)",
		email, hash, accessLevel)
	if err != nil {
		// unique email index
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,access_level,is_active,created_at,updated_at FROM accounts WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.AccessLevel, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,access_level,is_active,created_at,updated_at FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.AccessLevel, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Delete removes an account.  Profile, refresh tokens and reservations go
// with it via ON DELETE CASCADE.
func (r *AccountRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM accounts WHERE id=?", id)
	return err
}
