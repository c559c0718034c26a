package usage

const (
	queryInsert = `
		INSERT INTO usage_records (owner_email, template_slug, response)
		VALUES ($1, $2, $3)
		RETURNING id, owner_email, template_slug, response, created_at
	`

	queryListByOwner = `
		SELECT id, owner_email, template_slug, response, created_at
		FROM usage_records
		WHERE owner_email = $1
		ORDER BY id
	`
)
