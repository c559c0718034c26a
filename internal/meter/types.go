package meter

import (
	"context"
	"time"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/usage"
	"codeberg.org/inkwell/billing/internal/metrics"
)

// severity of an owner's consumption relative to their ceiling
type Band string

const (
	BandNormal    Band = "normal"
	BandWarning   Band = "warning"
	BandExhausted Band = "exhausted"
)

// reads and appends usage records
type UsageStore interface {
	ListByOwner(ctx context.Context, email string) ([]usage.Record, error)
	Append(ctx context.Context, rec usage.NewRecord) (*usage.Record, error)
}

// reads accounts and opens free-tier ones
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*accounts.Account, error)
	Ensure(ctx context.Context, email, plan string, ceiling int64) error
}

// tunables for the meter
type Config struct {
	FreeCeiling  int64
	FreePlan     string
	StoreTimeout time.Duration
}

// computes quota state from stored usage and account ceilings
type Meter struct {
	usage    UsageStore
	accounts AccountStore
	cfg      Config
	metrics  *metrics.Metrics
}

// quota snapshot for one owner
type Usage struct {
	OwnerEmail string `json:"ownerEmail"`
	Total      int64  `json:"total"`
	Ceiling    int64  `json:"ceiling"`
	Remaining  int64  `json:"remaining"`
	Available  bool   `json:"available"`
	Band       Band   `json:"band"`
	Plan       string `json:"plan"`
	Records    int    `json:"records"`
}
