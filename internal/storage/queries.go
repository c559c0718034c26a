package storage

type migration struct {
	name  string
	query string
}

// applied in order; every statement is idempotent
var migrations = []migration{
	{name: "create_accounts", query: createAccountsTable},
	{name: "create_usage_records", query: createUsageRecordsTable},
	{name: "create_payment_ledger", query: createPaymentLedgerTable},
}

const (
	createAccountsTable = `
		CREATE TABLE IF NOT EXISTS accounts (
			owner_email     TEXT PRIMARY KEY,
			plan            TEXT NOT NULL,
			credit_ceiling  BIGINT NOT NULL CHECK (credit_ceiling >= 0),
			last_payment_at TIMESTAMPTZ,
			payment_status  TEXT NOT NULL DEFAULT 'none',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	createUsageRecordsTable = `
		CREATE TABLE IF NOT EXISTS usage_records (
			id            BIGSERIAL PRIMARY KEY,
			owner_email   TEXT NOT NULL,
			template_slug TEXT NOT NULL DEFAULT '',
			response      TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_usage_records_owner ON usage_records (owner_email)
	`

	createPaymentLedgerTable = `
		CREATE TABLE IF NOT EXISTS payment_ledger (
			id             UUID PRIMARY KEY,
			transaction_id TEXT NOT NULL UNIQUE,
			order_id       TEXT NOT NULL,
			payer_id       TEXT NOT NULL DEFAULT '',
			payer_email    TEXT NOT NULL,
			amount         BIGINT NOT NULL,
			currency       TEXT NOT NULL,
			plan_name      TEXT NOT NULL,
			credits_added  BIGINT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_payment_ledger_payer ON payment_ledger (payer_email, created_at DESC)
	`
)
