package wizard

import "signup-wizard/internal/catalog"

// MarketSource resolves market ids to their interests.
type MarketSource interface {
	Market(id string) (catalog.Market, bool)
	All() []catalog.Market
}

// Selection maps toggled markets to the flattened interest ids to submit.
// interestIDs is always derived from marketIDs, except while pinned.
type Selection struct {
	source      MarketSource
	marketIDs   []string
	interestIDs []string
	pinned      []string
	own         []string // markets the visitor chose before pinning
}

func NewSelection(src MarketSource) *Selection {
	return &Selection{source: src, marketIDs: []string{}, interestIDs: []string{}}
}

// ToggleMarket flips membership of id. Unknown ids are ignored.
func (s *Selection) ToggleMarket(id string) {
	if _, ok := s.source.Market(id); !ok {
		return
	}
	for i, m := range s.marketIDs {
		if m == id {
			s.marketIDs = append(s.marketIDs[:i:i], s.marketIDs[i+1:]...)
			s.recompute()
			return
		}
	}
	s.marketIDs = append(s.marketIDs, id)
	s.recompute()
}

// recompute concatenates interest ids in selection order. Overlapping
// markets contribute duplicates.
func (s *Selection) recompute() {
	ids := []string{}
	for _, id := range s.marketIDs {
		m, _ := s.source.Market(id)
		ids = append(ids, m.InterestIDs...)
	}
	s.interestIDs = ids
}

func (s *Selection) MarketIDs() []string {
	return append([]string{}, s.marketIDs...)
}

func (s *Selection) InterestIDs() []string {
	if s.pinned != nil {
		return append([]string{}, s.pinned...)
	}
	return append([]string{}, s.interestIDs...)
}

func (s *Selection) Empty() bool {
	return len(s.marketIDs) == 0 && len(s.pinned) == 0
}

// Pin replaces the submitted interests with a stored registration's list.
// Markets touching any pinned interest are marked selected for display.
func (s *Selection) Pin(interestIDs []string) {
	if s.pinned == nil {
		s.own = append([]string{}, s.marketIDs...)
	}
	s.pinned = append([]string{}, interestIDs...)

	want := make(map[string]bool, len(interestIDs))
	for _, id := range interestIDs {
		want[id] = true
	}
	s.marketIDs = []string{}
	for _, m := range s.source.All() {
		for _, id := range m.InterestIDs {
			if want[id] {
				s.marketIDs = append(s.marketIDs, m.ID)
				break
			}
		}
	}
	s.recompute()
}

// Unpin drops a pin and restores the visitor's own market choice.
func (s *Selection) Unpin() {
	if s.pinned == nil {
		return
	}
	s.pinned = nil
	s.marketIDs = s.own
	s.own = nil
	s.recompute()
}

func (s *Selection) Pinned() bool {
	return s.pinned != nil
}

// Clear drops every selected market and any pin.
func (s *Selection) Clear() {
	s.pinned = nil
	s.own = nil
	s.marketIDs = []string{}
	s.interestIDs = []string{}
}
