// Package plans is the static plan catalog and the rules for turning a
// client-supplied credit amount into a grant.
package plans

import "strings"

const (
	Basic      = "Basic Plan"
	Pro        = "Pro Plan"
	Enterprise = "Enterprise Plan"
	Free       = "Free Plan"

	// grant used when neither the credits value nor the plan name is usable
	DefaultGrant int64 = 500000
)

// Plan is one catalog entry. Prices are in whole units of each currency.
type Plan struct {
	Name     string   `json:"name"`
	Credits  int64    `json:"credits"`
	PriceINR int64    `json:"price_inr"`
	PriceUSD float64  `json:"price_usd"`
	Features []string `json:"features"`
}

// Catalog is an ordered, read-only list of plans.
type Catalog struct {
	plans  []Plan
	byName map[string]Plan
}

// builds a catalog from the given plans; later duplicates win
func NewCatalog(plans ...Plan) *Catalog {
	c := &Catalog{
		plans:  make([]Plan, 0, len(plans)),
		byName: make(map[string]Plan, len(plans)),
	}

	for _, p := range plans {
		if _, exists := c.byName[p.Name]; !exists {
			c.plans = append(c.plans, p)
		}
		c.byName[p.Name] = p
	}

	return c
}

// returns the catalog sold in production
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Plan{
			Name:     Basic,
			Credits:  50000,
			PriceINR: 749,
			PriceUSD: 9.99,
			Features: []string{"50,000 Credits", "Basic Support", "Standard Response Time", "Basic Analytics"},
		},
		Plan{
			Name:     Pro,
			Credits:  500000,
			PriceINR: 1499,
			PriceUSD: 19.99,
			Features: []string{"500,000 Credits", "Priority Support", "Faster Response Time", "Advanced Analytics", "Custom Templates"},
		},
		Plan{
			Name:     Enterprise,
			Credits:  1000000,
			PriceINR: 3749,
			PriceUSD: 49.99,
			Features: []string{"1,000,000 Credits", "24/7 Support", "Instant Response Time", "Full Analytics Suite", "Custom Integration", "Dedicated Account Manager"},
		},
	)
}

// looks up a plan by its exact display name
func (c *Catalog) Lookup(name string) (Plan, bool) {
	p, ok := c.byName[strings.TrimSpace(name)]
	return p, ok
}

// returns the plans in catalog order
func (c *Catalog) All() []Plan {
	out := make([]Plan, len(c.plans))
	for i, p := range c.plans {
		out[i] = c.byName[p.Name]
	}

	return out
}

// returns the fixed grant for a plan name, or DefaultGrant for unknown plans
func (c *Catalog) FallbackGrant(planName string) int64 {
	if p, ok := c.Lookup(planName); ok && p.Credits > 0 {
		return p.Credits
	}

	return DefaultGrant
}

// ResolveGrant turns the untrusted credits string into the number of credits
// to add. A value that parses to a positive integer is used as-is; anything
// else falls back to the catalog so a verified payment is never blocked by a
// malformed amount.
func (c *Catalog) ResolveGrant(credits, planName string) (grant int64, fromCatalog bool) {
	if n, ok := ParseCredits(credits); ok && n > 0 {
		return n, false
	}

	return c.FallbackGrant(planName), true
}
