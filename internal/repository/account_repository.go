package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/homestay-ledger/internal/model"
)

// ErrInsufficientBalance is returned by DebitTx when the account cannot
// cover the requested amount.  The ledger layer maps it to its own
// sentinel; it exists here so the conditional UPDATE stays in one place.
var ErrInsufficientBalance = errors.New("insufficient balance")

// AccountRepo persists account balances and the single pooled escrow
// row.  Accounts spring into existence on first credit; a missing row
// reads as zero.  All balance mutations are conditional single-statement
// updates inside the caller's transaction, so custody arithmetic is
// atomic with the status transition that causes it.
type AccountRepo struct{ db *sql.DB }

// NewAccountRepo returns an AccountRepo bound to the given database.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

// Balance returns the spendable balance of an address, zero when the
// account has never been credited.
func (r *AccountRepo) Balance(ctx context.Context, addr model.Address) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE address = ?`, addr.String()).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

// CreditTx adds funds to an address, creating the account row if needed.
func (r *AccountRepo) CreditTx(ctx context.Context, tx *sql.Tx, addr model.Address, amount uint64) error {
	const q = `INSERT INTO accounts (address, balance) VALUES (?, ?)
	           ON DUPLICATE KEY UPDATE balance = balance + VALUES(balance)`
	_, err := tx.ExecContext(ctx, q, addr.String(), amount)
	return err
}

// DebitTx removes funds from an address, failing with
// ErrInsufficientBalance when the balance cannot cover the amount.  The
// guard lives in the WHERE clause so the check and the debit are one
// atomic statement.
func (r *AccountRepo) DebitTx(ctx context.Context, tx *sql.Tx, addr model.Address, amount uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance - ? WHERE address = ? AND balance >= ?`,
		amount, addr.String(), amount)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// Escrow returns the pooled custodied balance.
func (r *AccountRepo) Escrow(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, `SELECT escrow_balance FROM ledger_state WHERE id = 1`).Scan(&n)
	return n, err
}

// EscrowAddTx grows the escrow pool inside the caller's transaction.
func (r *AccountRepo) EscrowAddTx(ctx context.Context, tx *sql.Tx, amount uint64) error {
	res, err := tx.ExecContext(ctx, `UPDATE ledger_state SET escrow_balance = escrow_balance + ? WHERE id = 1`, amount)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// EscrowSubTx shrinks the escrow pool.  The pool can never go negative
// if the state machine is correct, so a short pool is a hard error.
func (r *AccountRepo) EscrowSubTx(ctx context.Context, tx *sql.Tx, amount uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE ledger_state SET escrow_balance = escrow_balance - ? WHERE id = 1 AND escrow_balance >= ?`,
		amount, amount)
	if err != nil {
		return err
	}
	return requireRow(res)
}
