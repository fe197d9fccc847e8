package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	for _, in := range []string{"0", "240", "240.5", "240.50", "99999999.99"} {
		d, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, d.Equal(d.Round(2)), in)
	}

	d, err := ParseAmount("240.5")
	require.NoError(t, err)
	assert.Equal(t, "240.50", d.StringFixed(2))

	for _, in := range []string{"", "abc", "-1", "10.005", "100000000"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestCanonicalServices(t *testing.T) {
	got := canonicalServices([]string{"Bond Cleaning", "oven", "end-of-lease", "Oven Cleaning", "window"})
	assert.Equal(t, []string{"end-of-lease", "oven", "window"}, got)
}

func TestNotification_CarriesServices(t *testing.T) {
	q := &Quote{ID: "q-1", Name: "Ari", Email: "ari@example.com", Services: []string{"oven"}}
	n := q.Notification()
	assert.Equal(t, "q-1", n.ID)
	assert.Equal(t, []string{"oven"}, n.Services)
}
