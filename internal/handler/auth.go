package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/config"
	"github.com/iliyamo/homestay-ledger/internal/ledger"
	"github.com/iliyamo/homestay-ledger/internal/model"
	"github.com/iliyamo/homestay-ledger/internal/repository"
	"github.com/iliyamo/homestay-ledger/internal/utils"
)

// AuthHandler issues JWTs whose subject is the caller's ledger address.
// With the MySQL backend users live in the users table; in demo mode
// (no database) DemoSession hands out tokens for the seeded accounts.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo  // nil in demo mode
	Tokens *repository.TokenRepo // nil in demo mode
	Admin  model.Address
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo, admin model.Address) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, Admin: admin}
}

func (h *AuthHandler) roleFor(addr model.Address) string {
	if addr == h.Admin {
		return "admin"
	}
	return "user"
}

// issue signs an access token and mints a refresh token for the user.
func (h *AuthHandler) issue(c echo.Context, userID uint64, addr model.Address) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, addr, h.roleFor(addr), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign token"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create refresh token"})
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store refresh token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"address":       addr,
		"access_token":  access.Token,
		"expires_at":    access.Exp,
		"refresh_token": refresh.Raw,
	})
}

// Register handles POST /v1/auth/register.  A fresh ledger address is
// assigned to the new user; the address, not the email, is the identity
// the ledger sees.
func (h *AuthHandler) Register(c echo.Context) error {
	if h.Users == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "registration unavailable in demo mode"})
	}
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil || body.Email == "" || len(body.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password (min 8 chars) required"})
	}
	addr, err := utils.NewAddress()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not assign address"})
	}
	id, err := h.Users.Create(c.Request().Context(), body.Email, body.Password, addr, "user", h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "address": addr})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	if h.Users == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "login unavailable in demo mode"})
	}
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil || body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password required"})
	}
	u, err := h.Users.GetByEmail(c.Request().Context(), body.Email)
	if err != nil || !u.IsActive || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.issue(c, u.ID, u.Address)
}

// Refresh handles POST /v1/auth/refresh: rotate the refresh token and
// return a new access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	if h.Tokens == nil {
		return c.JSON(http.StatusNotImplemented, echo.Map{"error": "refresh unavailable in demo mode"})
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil || body.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(body.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(c.Request().Context(), hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not validate token"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil || !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	// One-shot rotation: the presented token dies with this exchange.
	if err := h.Tokens.RevokeByHash(c.Request().Context(), hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not rotate token"})
	}
	return h.issue(c, u.ID, u.Address)
}

// Logout handles POST /v1/auth/logout: revoke the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	if h.Tokens == nil {
		return c.NoContent(http.StatusNoContent)
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&body); err != nil || body.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(body.RefreshToken)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not revoke token"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/auth/me: the identity behind the access token.
func (h *AuthHandler) Me(c echo.Context) error {
	addr, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"address": addr, "role": h.roleFor(addr)})
}

// DemoSession handles POST /v1/auth/demo: mint an access token for one
// of the seeded demo accounts by name.  Only wired when demo mode is on.
func (h *AuthHandler) DemoSession(c echo.Context) error {
	var body struct {
		Account string `json:"account"` // "alice", "bob", "charlie" or "admin"
	}
	if err := c.Bind(&body); err != nil || body.Account == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "account required"})
	}
	var addr model.Address
	if strings.EqualFold(body.Account, "admin") {
		addr = h.Admin
	} else {
		for _, acc := range ledger.DemoAccounts {
			if strings.EqualFold(acc.Name, body.Account) {
				addr = model.NormalizeAddress(acc.Address)
				break
			}
		}
	}
	if addr.IsZero() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown demo account"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, addr, h.roleFor(addr), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not sign token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"address":      addr,
		"access_token": access.Token,
		"expires_at":   access.Exp,
	})
}
