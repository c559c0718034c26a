package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCredits(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"50,000", 50000, true},
		{"500,000", 500000, true},
		{"1,000,000", 1000000, true},
		{"20000", 20000, true},
		{"  42 ", 42, true},
		{"1.5", 1, true},
		{"500000 credits", 500000, true},
		{"+7", 7, true},
		{"-5", -5, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{",", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCredits(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveGrant_UsesParsedValue(t *testing.T) {
	c := DefaultCatalog()

	grant, fromCatalog := c.ResolveGrant("50,000", Basic)

	assert.Equal(t, int64(50000), grant)
	assert.False(t, fromCatalog)
}

func TestResolveGrant_FallsBackToPlan(t *testing.T) {
	c := DefaultCatalog()

	for _, credits := range []string{"0", "not-a-number", "", "-100"} {
		grant, fromCatalog := c.ResolveGrant(credits, Pro)
		assert.Equal(t, int64(500000), grant, "credits=%q", credits)
		assert.True(t, fromCatalog)
	}

	grant, _ := c.ResolveGrant("0", Basic)
	assert.Equal(t, int64(50000), grant)

	grant, _ = c.ResolveGrant("bogus", Enterprise)
	assert.Equal(t, int64(1000000), grant)
}

func TestResolveGrant_UnknownPlanUsesDefault(t *testing.T) {
	c := DefaultCatalog()

	grant, fromCatalog := c.ResolveGrant("0", "Platinum Plan")

	assert.Equal(t, DefaultGrant, grant)
	assert.True(t, fromCatalog)
}

func TestCatalog_Order(t *testing.T) {
	all := DefaultCatalog().All()

	if assert.Len(t, all, 3) {
		assert.Equal(t, Basic, all[0].Name)
		assert.Equal(t, Pro, all[1].Name)
		assert.Equal(t, Enterprise, all[2].Name)
		assert.Equal(t, int64(1499), all[1].PriceINR)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := DefaultCatalog()

	p, ok := c.Lookup(" Pro Plan ")
	assert.True(t, ok)
	assert.Equal(t, int64(500000), p.Credits)

	_, ok = c.Lookup("pro plan")
	assert.False(t, ok)
}
