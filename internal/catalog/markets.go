package catalog

import (
	"signup-wizard/pkg/models"
	"strconv"
)

// Market is a display-level aggregation of one interest group, or a single
// interest when it comes from the Waitlist group.
type Market struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Flag        string   `json:"flag,omitempty"`
	ParentType  string   `json:"parentType"`
	Waitlist    bool     `json:"waitlist"`
	InterestIDs []string `json:"interestIds"`
}

// DeriveMarkets turns a taxonomy into regular markets and waitlist markets.
// Output order follows group order, then subcategory order.
func DeriveMarkets(groups []models.InterestGroup) (markets []Market, waitlist []Market) {
	markets = []Market{}
	waitlist = []Market{}
	seen := make(map[string]int)

	for _, g := range groups {
		if g.ParentType == ParentWaitlist {
			for _, in := range g.Subcategories {
				waitlist = append(waitlist, Market{
					ID:          uniqueID(seen, Slugify("waitlist "+in.Name)),
					Name:        in.Name,
					Description: waitlistDescription,
					ParentType:  g.ParentType,
					Waitlist:    true,
					InterestIDs: []string{in.ID},
				})
			}
			continue
		}

		d := describe(g.ParentType)
		ids := make([]string, 0, len(g.Subcategories))
		for _, in := range g.Subcategories {
			ids = append(ids, in.ID)
		}
		markets = append(markets, Market{
			ID:          uniqueID(seen, Slugify(d.name)),
			Name:        d.name,
			Description: d.description,
			Flag:        Flag(d.country),
			ParentType:  g.ParentType,
			InterestIDs: ids,
		})
	}
	return markets, waitlist
}

func uniqueID(seen map[string]int, id string) string {
	if id == "" {
		id = "market"
	}
	seen[id]++
	if n := seen[id]; n > 1 {
		return id + "-" + strconv.Itoa(n)
	}
	return id
}
