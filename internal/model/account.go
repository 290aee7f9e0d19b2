package model

import "time"

// Account represents a login identity as stored in the `accounts` table.
// Accounts carry the credential and the access level; guest-facing profile
// data lives in the separate users table so that an administrator account
// never owns a dining profile.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  AccessLevel  – either "admin" or "user".
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Account struct {
    ID           uint64    // accounts.id
    Email        string    // accounts.email
    PasswordHash string    // accounts.password_hash
    AccessLevel  string    // accounts.access_level
    IsActive     bool      // accounts.is_active
    CreatedAt    time.Time // accounts.created_at
    UpdatedAt    time.Time // accounts.updated_at
}

// Access levels recognised in accounts.access_level and in the JWT
// "access_level" claim.
const (
    AccessAdmin = "admin"
    AccessUser  = "user"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to an account and contains metadata for expiry
// and revocation.  The plain token is not stored; only its SHA‑256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  AccountID – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    AccountID uint64     // refresh_tokens.account_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
