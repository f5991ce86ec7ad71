package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	_, err = Parse("sepia")
	assert.Error(t, err)
}

func TestPreference(t *testing.T) {
	p := NewPreference("")
	assert.Equal(t, Light, p.Get())

	assert.Equal(t, Dark, p.Toggle())
	assert.Equal(t, Light, p.Toggle())

	p.Set(Dark)
	assert.Equal(t, Dark, p.Get())
	assert.Equal(t, Dark, NewPreference(Dark).Get())
}
