package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "  ", want: ""},
		{name: "already international", raw: "+1 (415) 555-0100", want: "+14155550100"},
		{name: "double zero prefix", raw: "0044 20 7946 0958", want: "+442079460958"},
		{name: "national trunk prefix", raw: "09876543210", want: "+919876543210"},
		{name: "bare national number", raw: "98765-43210", want: "+919876543210"},
		{name: "country code without plus", raw: "919876543210", want: "+919876543210"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizePhone(tc.raw, "91"))
		})
	}
}

func TestNormalizePhoneWithoutDefaultCountry(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "+9876543210", NormalizePhone("9876543210", ""))
}

func TestValidPhoneAndEmail(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPhone("+919876543210"))
	assert.False(t, ValidPhone("+0123456789"))
	assert.False(t, ValidPhone("+12345"))
	assert.False(t, ValidPhone("919876543210"))

	assert.True(t, ValidEmail("a@b.com"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
}

func TestMaskIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*********3210", MaskIdentifier("+919876543210"))
	assert.Equal(t, "a***@example.com", MaskIdentifier("asha@example.com"))
	assert.Equal(t, "***", MaskIdentifier("abc"))
}
