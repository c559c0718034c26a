package usage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new usage repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// appends a usage record
func (r *Repository) Append(ctx context.Context, rec NewRecord) (*Record, error) {
	var out Record

	err := r.db.QueryRow(ctx, queryInsert, rec.OwnerEmail, rec.TemplateSlug, rec.Response).Scan(
		&out.ID,
		&out.OwnerEmail,
		&out.TemplateSlug,
		&out.Response,
		&out.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to insert usage record: %w", err)
	}

	return &out, nil
}

// lists every record for an owner, oldest first
func (r *Repository) ListByOwner(ctx context.Context, email string) ([]Record, error) {
	rows, err := r.db.Query(ctx, queryListByOwner, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage records: %w", err)
	}

	defer rows.Close()

	records := []Record{}

	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OwnerEmail, &rec.TemplateSlug, &rec.Response, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan usage record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usage records: %w", err)
	}

	return records, nil
}
