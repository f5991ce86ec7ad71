package models

import (
	"encoding/json"
	"fmt"
)

// Interest is a selectable topic with a backend-assigned identifier.
type Interest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BroadcastTag string `json:"broadcastTag"`
	InterestTag  string `json:"interestTag"`
}

// InterestGroup is one taxonomy bucket (a country or asset class).
type InterestGroup struct {
	ParentType    string     `json:"parentType"`
	Subcategories []Interest `json:"subcategories"`
}

// MainTypeGroup wraps groups under a main type label ("List" in most payloads).
type MainTypeGroup struct {
	MainType      string          `json:"mainType"`
	Subcategories []InterestGroup `json:"subcategories"`
}

// DecodeGroupedInterests accepts either a flat array of InterestGroup or an
// array of MainTypeGroup and returns the groups in response order.
func DecodeGroupedInterests(data []byte) ([]InterestGroup, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode grouped interests: %w", err)
	}

	groups := make([]InterestGroup, 0, len(raw))
	for i, item := range raw {
		var probe struct {
			MainType *string `json:"mainType"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, fmt.Errorf("decode grouped interests[%d]: %w", i, err)
		}

		if probe.MainType != nil {
			var mt MainTypeGroup
			if err := json.Unmarshal(item, &mt); err != nil {
				return nil, fmt.Errorf("decode main type %q: %w", *probe.MainType, err)
			}
			groups = append(groups, mt.Subcategories...)
			continue
		}

		var g InterestGroup
		if err := json.Unmarshal(item, &g); err != nil {
			return nil, fmt.Errorf("decode grouped interests[%d]: %w", i, err)
		}
		if g.ParentType == "" {
			return nil, fmt.Errorf("decode grouped interests[%d]: missing parentType", i)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
