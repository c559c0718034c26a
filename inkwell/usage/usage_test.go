package usage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRecord_Length(t *testing.T) {
	assert.Equal(t, int64(0), Record{}.Length())
	assert.Equal(t, int64(0), Record{Response: strPtr("")}.Length())
	assert.Equal(t, int64(5), Record{Response: strPtr("hello")}.Length())
	assert.Equal(t, int64(4), Record{Response: strPtr("café")}.Length())
	assert.Equal(t, int64(1), Record{Response: strPtr("\U0001F600")}.Length())
}

func TestMemoryRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Append(ctx, NewRecord{OwnerEmail: "a@example.com", Response: strPtr("abc")})
	require.NoError(t, err)
	_, err = repo.Append(ctx, NewRecord{OwnerEmail: "a@example.com"})
	require.NoError(t, err)
	_, err = repo.Append(ctx, NewRecord{OwnerEmail: "b@example.com", Response: strPtr("zz")})
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Nil(t, records[1].Response)

	none, err := repo.ListByOwner(ctx, "c@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryRepository_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Append(ctx, NewRecord{OwnerEmail: "a@example.com", TemplateSlug: "blog"})
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	records[0].TemplateSlug = "changed"

	again, err := repo.ListByOwner(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "blog", again[0].TemplateSlug)
}
