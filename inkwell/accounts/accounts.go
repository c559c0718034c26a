package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new account repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds the account for an owner; returns nil when none exists
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account

	err := r.db.QueryRow(ctx, queryFindByEmail, email).Scan(
		&a.OwnerEmail,
		&a.Plan,
		&a.CreditCeiling,
		&a.LastPaymentAt,
		&a.PaymentStatus,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &a, nil
}

// creates an account on the given plan if the owner has none
func (r *Repository) Ensure(ctx context.Context, email, plan string, ceiling int64) error {
	if _, err := r.db.Exec(ctx, queryEnsure, email, plan, ceiling); err != nil {
		return fmt.Errorf("failed to ensure account: %w", err)
	}

	return nil
}

// adds credits to an owner's ceiling, creating the account when absent
func (r *Repository) Credit(ctx context.Context, p CreditParams) (*CreditResult, error) {
	var a Account
	var inserted bool

	err := r.db.QueryRow(ctx, queryCredit, p.OwnerEmail, p.Plan, p.Credits, p.PaidAt).Scan(
		&a.OwnerEmail,
		&a.Plan,
		&a.CreditCeiling,
		&a.LastPaymentAt,
		&a.PaymentStatus,
		&a.CreatedAt,
		&a.UpdatedAt,
		&inserted,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to credit account: %w", err)
	}

	return &CreditResult{Account: &a, Created: inserted}, nil
}
