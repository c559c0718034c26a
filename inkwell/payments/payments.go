package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new payment ledger repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// records a payment; fills ID and CreatedAt when empty
func (r *Repository) Append(ctx context.Context, e *Entry) error {
	prepare(e)

	tag, err := r.db.Exec(ctx, queryAppend,
		e.ID,
		e.TransactionID,
		e.OrderID,
		e.PayerID,
		e.PayerEmail,
		e.Amount,
		e.Currency,
		e.PlanName,
		e.CreditsAdded,
		e.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append payment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrDuplicateTransaction
	}

	return nil
}

// finds the entry for a provider transaction id; returns nil when absent
func (r *Repository) FindByTransactionID(ctx context.Context, transactionID string) (*Entry, error) {
	e, err := scanEntry(r.db.QueryRow(ctx, queryFindByTransactionID, transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	return e, nil
}

// lists the most recent payments of an owner
func (r *Repository) ListByPayer(ctx context.Context, email string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(ctx, queryListByPayer, email, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}

	defer rows.Close()

	entries := []Entry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		entries = append(entries, *e)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry

	err := row.Scan(
		&e.ID,
		&e.TransactionID,
		&e.OrderID,
		&e.PayerID,
		&e.PayerEmail,
		&e.Amount,
		&e.Currency,
		&e.PlanName,
		&e.CreditsAdded,
		&e.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &e, nil
}

func prepare(e *Entry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
}
