package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/homestay-ledger/internal/ledger"
	"github.com/iliyamo/homestay-ledger/internal/model"
	"github.com/iliyamo/homestay-ledger/internal/utils"
)

// WalletHandler exposes account balances and, in demo deployments, a
// faucet so new accounts can fund bookings without a payment rail.
type WalletHandler struct {
	Ledger ledger.Ledger
	Faucet bool // enables the deposit endpoint
}

func NewWalletHandler(l ledger.Ledger, faucet bool) *WalletHandler {
	if l == nil {
		panic("nil ledger passed to NewWalletHandler")
	}
	return &WalletHandler{Ledger: l, Faucet: faucet}
}

// Balance handles GET /v1/wallet: the caller's spendable balance.
func (h *WalletHandler) Balance(c echo.Context) error {
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bal, err := h.Ledger.BalanceOf(c.Request().Context(), caller)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"address":         caller,
		"balance":         bal,
		"balance_decimal": utils.FromSubunits(bal),
	})
}

// BalanceOf handles GET /v1/wallet/:address, a read of any account.
func (h *WalletHandler) BalanceOf(c echo.Context) error {
	addr := model.NormalizeAddress(c.Param("address"))
	if addr.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address"})
	}
	bal, err := h.Ledger.BalanceOf(c.Request().Context(), addr)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"address":         addr,
		"balance":         bal,
		"balance_decimal": utils.FromSubunits(bal),
	})
}

// Deposit handles POST /v1/wallet/deposit.  Only available when the
// faucet flag is on; production deployments keep funding external.
func (h *WalletHandler) Deposit(c echo.Context) error {
	if !h.Faucet {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "faucet disabled"})
	}
	caller, err := getAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Amount string `json:"amount"` // decimal units
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	amount, err := utils.ToSubunits(body.Amount)
	if err != nil || amount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid amount"})
	}
	if err := h.Ledger.Credit(c.Request().Context(), caller, amount); err != nil {
		return ledgerError(c, err)
	}
	bal, err := h.Ledger.BalanceOf(c.Request().Context(), caller)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"address":         caller,
		"balance":         bal,
		"balance_decimal": utils.FromSubunits(bal),
	})
}
