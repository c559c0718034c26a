package meter

import (
	"context"
	"strings"

	"codeberg.org/inkwell/billing/inkwell/usage"
	"codeberg.org/inkwell/billing/internal/billing"
)

// appends one generation event for an owner. The first record of an owner
// opens a free-tier account so later upgrades accumulate on top of it.
func (m *Meter) Record(ctx context.Context, rec usage.NewRecord) (*usage.Record, error) {
	rec.OwnerEmail = strings.TrimSpace(rec.OwnerEmail)
	if rec.OwnerEmail == "" {
		return nil, billing.Validation(billing.OpRecordUsage, "owner email is required")
	}

	ctx, cancel := m.storeContext(ctx)
	defer cancel()

	if err := m.accounts.Ensure(ctx, rec.OwnerEmail, m.cfg.FreePlan, m.cfg.FreeCeiling); err != nil {
		m.metrics.StoreFailuresTotal.WithLabelValues(billing.OpRecordUsage).Inc()
		return nil, billing.StoreUnavailable(billing.OpRecordUsage, err)
	}

	created, err := m.usage.Append(ctx, rec)
	if err != nil {
		m.metrics.StoreFailuresTotal.WithLabelValues(billing.OpRecordUsage).Inc()
		return nil, billing.StoreUnavailable(billing.OpRecordUsage, err)
	}

	m.metrics.UsageRecordsTotal.Inc()

	return created, nil
}
