package zone

import (
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	names, err := Catalog()
	require.NoError(t, err)
	assert.Greater(t, len(names), 20)
	assert.Contains(t, names, "UTC")
	assert.Contains(t, names, "America/New_York")
	assert.Equal(t, "US/Eastern", names[0], "US zones come first")
}

func TestCatalogNamesAllResolve(t *testing.T) {
	names, err := Catalog()
	require.NoError(t, err)
	for _, name := range names {
		assert.NoError(t, Validate(name), "catalog entry %q", name)
	}
}

func TestValidateUnknownZone(t *testing.T) {
	assert.Error(t, Validate("Mars/Olympus_Mons"))
}

func TestSelection(t *testing.T) {
	s := NewSelection("UTC")
	assert.Equal(t, "UTC", s.Current())

	s.Set("Asia/Tokyo")
	assert.Equal(t, "Asia/Tokyo", s.Current())
}
