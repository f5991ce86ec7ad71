package catalog

import (
	"context"
	"log"
	"signup-wizard/pkg/models"
)

// Fetcher is the backend read used by the loader.
type Fetcher interface {
	FetchGroupedInterests(ctx context.Context) ([]models.InterestGroup, error)
}

type Loader struct {
	Fetcher            Fetcher
	AllowedParentTypes []string
	ExcludeCustom      bool
}

func NewLoader(f Fetcher, allowed []string, excludeCustom bool) *Loader {
	return &Loader{Fetcher: f, AllowedParentTypes: allowed, ExcludeCustom: excludeCustom}
}

// Catalog is the taxonomy snapshot a wizard session works against.
type Catalog struct {
	Groups   []models.InterestGroup `json:"groups"`
	Markets  []Market               `json:"markets"`
	Waitlist []Market               `json:"waitlist"`
	Degraded bool                   `json:"degraded"`
	byID     map[string]Market
}

// Load fetches the taxonomy once. Failures yield an empty, degraded catalog.
func (l *Loader) Load(ctx context.Context) *Catalog {
	groups, err := l.Fetcher.FetchGroupedInterests(ctx)
	if err != nil {
		log.Printf("Interest catalog unavailable: %v", err)
		c := NewCatalog(nil)
		c.Degraded = true
		return c
	}
	return NewCatalog(FilterGroups(groups, l.AllowedParentTypes, l.ExcludeCustom))
}

// NewCatalog derives markets from already filtered groups.
func NewCatalog(groups []models.InterestGroup) *Catalog {
	if groups == nil {
		groups = []models.InterestGroup{}
	}
	markets, waitlist := DeriveMarkets(groups)
	c := &Catalog{
		Groups:   groups,
		Markets:  markets,
		Waitlist: waitlist,
		byID:     make(map[string]Market, len(markets)+len(waitlist)),
	}
	for _, m := range markets {
		c.byID[m.ID] = m
	}
	for _, m := range waitlist {
		c.byID[m.ID] = m
	}
	return c
}

func (c *Catalog) Market(id string) (Market, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// All returns regular markets followed by waitlist markets.
func (c *Catalog) All() []Market {
	out := make([]Market, 0, len(c.Markets)+len(c.Waitlist))
	out = append(out, c.Markets...)
	return append(out, c.Waitlist...)
}

// FilterGroups keeps allowed parent types (all when allowed is empty) and
// drops Custom when excludeCustom is set. Waitlist always survives the
// allow-list.
func FilterGroups(groups []models.InterestGroup, allowed []string, excludeCustom bool) []models.InterestGroup {
	allow := make(map[string]bool, len(allowed))
	for _, t := range allowed {
		allow[t] = true
	}

	out := make([]models.InterestGroup, 0, len(groups))
	for _, g := range groups {
		if excludeCustom && g.ParentType == ParentCustom {
			continue
		}
		if len(allow) > 0 && !allow[g.ParentType] && g.ParentType != ParentWaitlist {
			continue
		}
		out = append(out, g)
	}
	return out
}
