package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/config"
    "github.com/quai-antique/restaurant-reservation/internal/model"
    "github.com/quai-antique/restaurant-reservation/internal/repository"
    "github.com/quai-antique/restaurant-reservation/internal/utils"
)

// AuthHandler bundles dependencies for account and profile endpoints.
type AuthHandler struct {
    Cfg      config.Config
    Accounts *repository.AccountRepo
    Profiles *repository.ProfileRepo
    Tokens   *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo, p *repository.ProfileRepo, t *repository.TokenRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Accounts: a, Profiles: p, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
    Email         string  `json:"email"`
    Password      string  `json:"password"`
    FirstName     string  `json:"first_name"`
    LastName      string  `json:"last_name"`
    DefaultGuests uint32  `json:"default_guests"`
    Allergies     *string `json:"allergies"`
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}
type profileReq struct {
    FirstName     string  `json:"first_name"`
    LastName      string  `json:"last_name"`
    DefaultGuests uint32  `json:"default_guests"`
    Allergies     *string `json:"allergies"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type accountPart struct {
    ID          uint64 `json:"id"`
    Email       string `json:"email"`
    AccessLevel string `json:"access_level"`
}
type authResp struct {
    Account accountPart `json:"account"`
    Access  tokenPart   `json:"access"`
    Refresh tokenPart   `json:"refresh"`
}

// issuePair signs a fresh access token and stores a new hashed refresh
// token for the account.
func (h *AuthHandler) issuePair(ctx context.Context, accountID uint64, accessLevel string) (utils.AccessToken, utils.RefreshToken, error) {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, accountID, accessLevel, h.Cfg.AccessTTLMin)
    if err != nil {
        return utils.AccessToken{}, utils.RefreshToken{}, err
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return utils.AccessToken{}, utils.RefreshToken{}, err
    }
    if err := h.Tokens.StoreRefresh(ctx, accountID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return utils.AccessToken{}, utils.RefreshToken{}, err
    }
    return access, refresh, nil
}

// Register creates a guest account plus its dining profile and returns a
// token pair immediately.  Every self-registered account gets the "user"
// access level; admins are seeded from configuration, never registered.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    aid, err := h.Accounts.Create(ctx, req.Email, req.Password, model.AccessUser, h.Cfg.BcryptCost)
    if err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
    }

    firstName := strings.TrimSpace(req.FirstName)
    lastName := strings.TrimSpace(req.LastName)
    if firstName == "" {
        firstName = "Guest"
    }
    if lastName == "" {
        lastName = "User"
    }
    guests := req.DefaultGuests
    if guests == 0 {
        guests = 1
    }
    if _, err := h.Profiles.Create(ctx, aid, firstName, lastName, guests, req.Allergies); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
    }

    access, refresh, err := h.issuePair(ctx, aid, model.AccessUser)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
    }
    return c.JSON(http.StatusCreated, authResp{
        Account: accountPart{ID: aid, Email: req.Email, AccessLevel: model.AccessUser},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    })
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    a, err := h.Accounts.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !a.IsActive || !utils.VerifyPassword(a.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, refresh, err := h.issuePair(ctx, a.ID, a.AccessLevel)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
    }
    return c.JSON(http.StatusOK, authResp{
        Account: accountPart{ID: a.ID, Email: a.Email, AccessLevel: a.AccessLevel},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
    })
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.  Rotation keeps a stolen refresh token usable at most once.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }
    hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    accountID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
    }
    _ = h.Tokens.RevokeByHash(ctx, hash)

    a, err := h.Accounts.GetByID(ctx, accountID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
    }

    access, refresh, err := h.issuePair(ctx, a.ID, a.AccessLevel)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
    }
    return c.JSON(http.StatusOK, authResp{
        Account: accountPart{ID: a.ID, Email: a.Email, AccessLevel: a.AccessLevel},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
    })
}

// Logout revokes refresh tokens for the current session.  With a
// refresh_token in the body only that session is revoked; without one,
// every session of the authenticated account is.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    _ = c.Bind(&req)
    refreshToken := strings.TrimSpace(req.RefreshToken)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if refreshToken != "" {
        hash := utils.HashRefreshRaw(refreshToken)
        if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
        }
        if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
        }
        return c.NoContent(http.StatusNoContent)
    }

    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    if err := h.Tokens.RevokeAllForAccount(ctx, accountID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Me returns the identity claims the middleware placed in the context.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "account_id":   c.Get("account_id"),
        "access_level": c.Get("access_level"),
    })
}

// GetProfile returns the dining profile of the current account.  An
// account without a profile (admin seeded from config, or a guest whose
// profile was never created) receives 404.
func (h *AuthHandler) GetProfile(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    u, err := h.Profiles.GetByAccount(ctx, accountID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":             u.ID,
        "first_name":     u.FirstName,
        "last_name":      u.LastName,
        "default_guests": u.DefaultGuests,
        "allergies":      u.Allergies,
    })
}

// UpdateProfile overwrites the profile of the current account, creating
// it first when missing.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req profileReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.FirstName = strings.TrimSpace(req.FirstName)
    req.LastName = strings.TrimSpace(req.LastName)
    if req.FirstName == "" || req.LastName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name required"})
    }
    if req.DefaultGuests == 0 {
        req.DefaultGuests = 1
    }
    ctx := c.Request().Context()
    if _, err := h.Profiles.GetByAccount(ctx, accountID); err != nil {
        if err != sql.ErrNoRows {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
        }
        if _, err := h.Profiles.Create(ctx, accountID, req.FirstName, req.LastName, req.DefaultGuests, req.Allergies); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
        }
        return c.NoContent(http.StatusNoContent)
    }
    if err := h.Profiles.Update(ctx, accountID, req.FirstName, req.LastName, req.DefaultGuests, req.Allergies); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update profile failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// DeleteAccount removes the current account.  The profile, refresh tokens
// and reservations cascade with it.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    if err := h.Accounts.Delete(ctx, accountID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete account failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
