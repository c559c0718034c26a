package payments

const (
	entryColumns = `id, transaction_id, order_id, payer_id, payer_email, amount, currency, plan_name, credits_added, created_at`

	queryAppend = `
		INSERT INTO payment_ledger (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (transaction_id) DO NOTHING
	`

	queryFindByTransactionID = `
		SELECT ` + entryColumns + `
		FROM payment_ledger
		WHERE transaction_id = $1
	`

	queryListByPayer = `
		SELECT ` + entryColumns + `
		FROM payment_ledger
		WHERE payer_email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
)
