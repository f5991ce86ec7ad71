package wizard

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionToggleMarketConcatenatesInSelectionOrder(t *testing.T) {
	t.Parallel()

	sel := NewSelection(testCatalog())
	sel.ToggleMarket("crypto")
	sel.ToggleMarket("indian-markets")

	assert.Equal(t, []string{"crypto", "indian-markets"}, sel.MarketIDs())
	// i2 belongs to both markets and is kept twice.
	assert.Equal(t, []string{"i2", "c1", "i1", "i2"}, sel.InterestIDs())
}

func TestSelectionToggleTwiceRestoresState(t *testing.T) {
	t.Parallel()

	sel := NewSelection(testCatalog())
	sel.ToggleMarket("us-markets")
	beforeMarkets, beforeInterests := sel.MarketIDs(), sel.InterestIDs()

	sel.ToggleMarket("waitlist-japan-pro")
	sel.ToggleMarket("waitlist-japan-pro")

	assert.Equal(t, beforeMarkets, sel.MarketIDs())
	assert.Equal(t, beforeInterests, sel.InterestIDs())
}

func TestSelectionIgnoresUnknownMarket(t *testing.T) {
	t.Parallel()

	sel := NewSelection(testCatalog())
	sel.ToggleMarket("atlantis")

	assert.Empty(t, sel.MarketIDs())
	assert.True(t, sel.Empty())
}

func TestSelectionInterestsArePureFunctionOfMarkets(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	ids := []string{"indian-markets", "us-markets", "crypto", "waitlist-japan-pro", "waitlist-options-desk"}
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 50; run++ {
		sel := NewSelection(cat)
		for step := 0; step < 20; step++ {
			sel.ToggleMarket(ids[rng.IntN(len(ids))])

			want := []string{}
			for _, id := range sel.MarketIDs() {
				m, _ := cat.Market(id)
				want = append(want, m.InterestIDs...)
			}
			assert.Equal(t, want, sel.InterestIDs())
		}
	}
}

func TestSelectionPinOverridesDerivedInterests(t *testing.T) {
	t.Parallel()

	sel := NewSelection(testCatalog())
	sel.ToggleMarket("us-markets")
	sel.Pin([]string{"c1", "w2"})

	assert.True(t, sel.Pinned())
	assert.Equal(t, []string{"c1", "w2"}, sel.InterestIDs())
	assert.Equal(t, []string{"crypto", "waitlist-options-desk"}, sel.MarketIDs())

	sel.Clear()
	assert.False(t, sel.Pinned())
	assert.Empty(t, sel.InterestIDs())
	assert.Empty(t, sel.MarketIDs())
}

func TestSelectionUnpinRestoresOwnMarkets(t *testing.T) {
	t.Parallel()

	sel := NewSelection(testCatalog())
	sel.ToggleMarket("us-markets")
	sel.Pin([]string{"c1"})
	sel.Pin([]string{"i1"})
	require.Equal(t, []string{"i1"}, sel.InterestIDs())

	sel.Unpin()
	assert.False(t, sel.Pinned())
	assert.Equal(t, []string{"us-markets"}, sel.MarketIDs())
	assert.Equal(t, []string{"u1"}, sel.InterestIDs())

	sel.Unpin()
	assert.Equal(t, []string{"u1"}, sel.InterestIDs())
}

func TestChannelSetToggle(t *testing.T) {
	t.Parallel()

	var cs ChannelSet
	assert.True(t, cs.Empty())

	cs.Toggle(ChannelTelegram)
	cs.Toggle(ChannelEmail)
	assert.Equal(t, []Channel{ChannelTelegram, ChannelEmail}, cs.List())
	assert.True(t, cs.Messaging())

	cs.Toggle(ChannelTelegram)
	assert.Equal(t, []Channel{ChannelEmail}, cs.List())
	assert.False(t, cs.Messaging())

	cs.Replace(ChannelWhatsApp, ChannelWhatsApp)
	assert.Equal(t, []Channel{ChannelWhatsApp}, cs.List())
}

func TestParseChannel(t *testing.T) {
	t.Parallel()

	ch, err := ParseChannel("whatsapp")
	assert.NoError(t, err)
	assert.Equal(t, ChannelWhatsApp, ch)

	_, err = ParseChannel("sms")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
