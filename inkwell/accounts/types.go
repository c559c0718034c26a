package accounts

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// payment status values
const (
	PaymentStatusNone      = "none"
	PaymentStatusCompleted = "completed"
)

// handles account database operations
type Repository struct {
	db *pgxpool.Pool
}

// one row per owner; the ceiling only moves up through Credit
type Account struct {
	OwnerEmail    string     `json:"owner_email"`
	Plan          string     `json:"plan"`
	CreditCeiling int64      `json:"credit_ceiling"`
	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// describes a verified purchase to apply to an owner's balance
type CreditParams struct {
	OwnerEmail string
	Plan       string
	Credits    int64
	PaidAt     time.Time
}

// outcome of Credit
type CreditResult struct {
	Account *Account
	Created bool
}
