package payments

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateTransaction = errors.New("payment already recorded")

// page size used by ListByPayer when the caller passes limit <= 0
const DefaultListLimit = 20

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}

	return limit
}

// handles payment ledger database operations
type Repository struct {
	db *pgxpool.Pool
}

// immutable audit record of one confirmed payment
type Entry struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	PayerID       string    `json:"payer_id,omitempty"`
	PayerEmail    string    `json:"payer_email"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	PlanName      string    `json:"plan_name"`
	CreditsAdded  int64     `json:"credits_added"`
	CreatedAt     time.Time `json:"created_at"`
}
