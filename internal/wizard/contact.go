package wizard

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ContactInfo struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

var (
	validate     = validator.New()
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// NormalizePhone returns raw in '+'-prefixed international form. Bare
// national numbers get defaultCountryCode. An empty input stays empty.
func NormalizePhone(raw, defaultCountryCode string) string {
	p := phoneStrip.Replace(strings.TrimSpace(raw))
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "+"):
		return p
	case strings.HasPrefix(p, "00"):
		return "+" + p[2:]
	case defaultCountryCode != "" && strings.HasPrefix(p, "0"):
		return "+" + defaultCountryCode + p[1:]
	case defaultCountryCode != "" && len(p) <= 10:
		return "+" + defaultCountryCode + p
	default:
		return "+" + p
	}
}

func ValidPhone(normalized string) bool {
	return phonePattern.MatchString(normalized)
}

func ValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// MaskIdentifier hides all but a recognisable tail of a phone or email.
func MaskIdentifier(id string) string {
	if at := strings.LastIndex(id, "@"); at > 0 {
		return id[:1] + "***" + id[at:]
	}
	if len(id) <= 4 {
		return strings.Repeat("*", len(id))
	}
	return strings.Repeat("*", len(id)-4) + id[len(id)-4:]
}
