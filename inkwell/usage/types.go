package usage

import (
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles usage record database operations
type Repository struct {
	db *pgxpool.Pool
}

// one generation event; append-only
type Record struct {
	ID           int64     `json:"id"`
	OwnerEmail   string    `json:"owner_email"`
	TemplateSlug string    `json:"template_slug"`
	Response     *string   `json:"response,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// data for appending a record
type NewRecord struct {
	OwnerEmail   string
	TemplateSlug string
	Response     *string
}

// credits consumed by the record: characters in the response, 0 when absent.
// Characters are Unicode code points, so an emoji costs 1 credit where a
// UTF-16 length would charge 2.
func (r Record) Length() int64 {
	if r.Response == nil {
		return 0
	}

	return int64(utf8.RuneCountInString(*r.Response))
}
