package reconciler

import (
	"context"
	"time"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/payments"
	"codeberg.org/inkwell/billing/internal/gateway"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/ownerlock"
	"codeberg.org/inkwell/billing/internal/plans"
)

// creates orders with the payment provider
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
}

// account reads and the atomic credit upsert
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*accounts.Account, error)
	Credit(ctx context.Context, p accounts.CreditParams) (*accounts.CreditResult, error)
}

// payment ledger
type Ledger interface {
	Append(ctx context.Context, e *payments.Entry) error
	FindByTransactionID(ctx context.Context, transactionID string) (*payments.Entry, error)
}

type Config struct {
	SecretKey      string
	Currency       string
	GatewayTimeout time.Duration
	StoreTimeout   time.Duration
}

// turns payment confirmations into credit grants
type Reconciler struct {
	gateway  Gateway
	accounts AccountStore
	ledger   Ledger
	locker   ownerlock.Locker
	catalog  *plans.Catalog
	cfg      Config
	metrics  *metrics.Metrics
	now      func() time.Time
}

// create_order input; Amount is in major currency units
type OrderRequest struct {
	OwnerID string
	Amount  int64
}

// gateway order handle returned to the client; Amount is in minor units
type Order struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// verify_payment input as sent by the checkout client
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
	OwnerID   string
	Email     string
	PlanName  string
	Credits   string
	Amount    int64
}

// result of a verified payment
type Upgrade struct {
	Credits        int64  `json:"credits"`
	Plan           string `json:"plan"`
	Ceiling        int64  `json:"ceiling"`
	LedgerRecorded bool   `json:"ledgerRecorded"`
	Replayed       bool   `json:"replayed"`
}
