package meter

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"codeberg.org/inkwell/billing/inkwell/accounts"
	"codeberg.org/inkwell/billing/inkwell/usage"
	"codeberg.org/inkwell/billing/internal/billing"
	"codeberg.org/inkwell/billing/internal/metrics"
	"codeberg.org/inkwell/billing/internal/plans"
)

// creates a meter; zero config values fall back to the free plan defaults
func New(usageStore UsageStore, accountStore AccountStore, cfg Config, m *metrics.Metrics) *Meter {
	if cfg.FreeCeiling <= 0 {
		cfg.FreeCeiling = plans.DefaultGrant
	}

	if cfg.FreePlan == "" {
		cfg.FreePlan = plans.Free
	}

	return &Meter{
		usage:    usageStore,
		accounts: accountStore,
		cfg:      cfg,
		metrics:  m,
	}
}

// returns the band for a total against a ceiling.
// warning starts at 75% of the ceiling, compared as 4*total >= 3*ceiling.
func Classify(total, ceiling int64) Band {
	switch {
	case total >= ceiling:
		return BandExhausted
	case 4*total >= 3*ceiling:
		return BandWarning
	default:
		return BandNormal
	}
}

// sums the owner's usage records and compares the total with their ceiling.
// read-only; a store failure is reported as StoreUnavailable and never
// replaced with a guessed quota.
func (m *Meter) ComputeUsage(ctx context.Context, ownerEmail string) (*Usage, error) {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, billing.Validation(billing.OpComputeUsage, "owner email is required")
	}

	ctx, cancel := m.storeContext(ctx)
	defer cancel()

	var records []usage.Record
	var account *accounts.Account

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = m.usage.ListByOwner(gctx, ownerEmail)
		return err
	})

	g.Go(func() error {
		var err error
		account, err = m.accounts.FindByEmail(gctx, ownerEmail)
		return err
	})

	if err := g.Wait(); err != nil {
		m.metrics.StoreFailuresTotal.WithLabelValues(billing.OpComputeUsage).Inc()
		return nil, billing.StoreUnavailable(billing.OpComputeUsage, err)
	}

	var total int64
	for _, r := range records {
		total += r.Length()
	}

	ceiling := m.cfg.FreeCeiling
	plan := m.cfg.FreePlan

	if account != nil {
		ceiling = account.CreditCeiling
		plan = account.Plan
	}

	remaining := ceiling - total
	if remaining < 0 {
		remaining = 0
	}

	u := &Usage{
		OwnerEmail: ownerEmail,
		Total:      total,
		Ceiling:    ceiling,
		Remaining:  remaining,
		Available:  total < ceiling,
		Band:       Classify(total, ceiling),
		Plan:       plan,
		Records:    len(records),
	}

	m.metrics.UsageChecksTotal.WithLabelValues(string(u.Band)).Inc()

	return u, nil
}

func (m *Meter) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.StoreTimeout > 0 {
		return context.WithTimeout(ctx, m.cfg.StoreTimeout)
	}

	return context.WithCancel(ctx)
}
