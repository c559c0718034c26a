package accounts

const (
	accountColumns = `owner_email, plan, credit_ceiling, last_payment_at, payment_status, created_at, updated_at`

	queryFindByEmail = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_email = $1
	`

	queryEnsure = `
		INSERT INTO accounts (owner_email, plan, credit_ceiling, payment_status)
		VALUES ($1, $2, $3, 'none')
		ON CONFLICT (owner_email) DO NOTHING
	`

	// accumulation happens inside one statement so concurrent upgrades never lose a grant
	queryCredit = `
		INSERT INTO accounts (owner_email, plan, credit_ceiling, last_payment_at, payment_status)
		VALUES ($1, $2, $3, $4, 'completed')
		ON CONFLICT (owner_email)
		DO UPDATE SET
			credit_ceiling = accounts.credit_ceiling + EXCLUDED.credit_ceiling,
			plan = EXCLUDED.plan,
			last_payment_at = EXCLUDED.last_payment_at,
			payment_status = EXCLUDED.payment_status,
			updated_at = NOW()
		RETURNING ` + accountColumns + `, (xmax = 0) AS inserted
	`
)
