package catalog

// Reserved parent types.
const (
	ParentWaitlist = "Waitlist"
	ParentCustom   = "Custom"
)

const (
	fallbackDescription = "Curated updates for this market"
	waitlistDescription = "Join the waitlist for early access"
)

type display struct {
	name        string
	description string
	country     string // ISO 3166-1 alpha-2, empty for non-country markets
}

var displayTable = map[string]display{
	"India":       {"Indian Markets", "NSE and BSE equities, indices and derivatives", "IN"},
	"US":          {"US Markets", "NYSE and NASDAQ stocks, ETFs and earnings", "US"},
	"UK":          {"UK Markets", "LSE listings and FTSE indices", "GB"},
	"Japan":       {"Japanese Markets", "TSE equities and the Nikkei 225", "JP"},
	"Singapore":   {"Singapore Markets", "SGX equities and REITs", "SG"},
	"UAE":         {"UAE Markets", "DFM and ADX listings", "AE"},
	"Crypto":      {"Crypto", "Bitcoin, Ethereum and major altcoins", ""},
	"Forex":       {"Forex", "Major and emerging currency pairs", ""},
	"Commodities": {"Commodities", "Gold, crude oil and agricultural futures", ""},
}

var flags = map[string]string{
	"AE": "🇦🇪",
	"GB": "🇬🇧",
	"IN": "🇮🇳",
	"JP": "🇯🇵",
	"SG": "🇸🇬",
	"US": "🇺🇸",
}

// Flag returns the emoji flag for an ISO 3166-1 alpha-2 code, or "" if the
// code is not in the table.
func Flag(countryCode string) string {
	return flags[countryCode]
}

func describe(parentType string) display {
	if d, ok := displayTable[parentType]; ok {
		return d
	}
	return display{name: parentType, description: fallbackDescription}
}
