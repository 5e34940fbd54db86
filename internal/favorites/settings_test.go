package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinfolium/kinfolium/internal/db/controller/usersetting"
)

func TestLoadSettings_MissingRowYieldsDefaults(t *testing.T) {
	db := newTestDB(t)

	s, err := LoadSettings(db, 7)
	require.NoError(t, err)
	assert.Empty(t, s.DefaultGroup)
	assert.Empty(t, s.Secondary)
}

func TestSettings_SaveAndReload(t *testing.T) {
	db := newTestDB(t)

	s := &Settings{DefaultGroup: "Research", Secondary: []string{"2,Archive"}}
	require.NoError(t, s.Save(db, 7))

	got, err := LoadSettings(db, 7)
	require.NoError(t, err)
	assert.Equal(t, "Research", got.DefaultGroup)
	assert.Equal(t, []string{"2,Archive"}, got.Secondary)
	assert.Equal(t, settingsVersion, got.Version)

	// the blob lands under the fixed setting name
	row, err := usersetting.Get(db, 7, SettingNameSettings)
	require.NoError(t, err)
	assert.Contains(t, string(row.SettingValue), `"version":1`)
}

func TestParseSecondarySelector(t *testing.T) {
	sel, ok := ParseSecondarySelector("42,Research")
	require.True(t, ok)
	assert.Equal(t, uint64(42), sel.OwnerID)
	assert.Equal(t, "Research", sel.Group.Name())
	assert.Equal(t, "42,Research", sel.String())

	// owner with the default group
	sel, ok = ParseSecondarySelector("42,")
	require.True(t, ok)
	assert.True(t, sel.Group.IsDefault())

	for _, bad := range []string{"", "Research", "0,Research", "abc,Research"} {
		_, ok := ParseSecondarySelector(bad)
		assert.False(t, ok, "selector %q", bad)
	}
}

func TestSharedGroups_SaveLoadContains(t *testing.T) {
	db := newTestDB(t)

	shared, err := LoadShared(db, 7)
	require.NoError(t, err)
	assert.Empty(t, shared)

	shared = SharedGroups{"Research", "Archive"}
	require.NoError(t, shared.Save(db, 7))

	got, err := LoadShared(db, 7)
	require.NoError(t, err)
	assert.True(t, got.Contains(GroupNamed("Research")))
	assert.True(t, got.Contains(GroupNamed(" Archive ")))
	assert.False(t, got.Contains(GroupNamed("Other")))
	assert.False(t, got.Contains(DefaultGroup))
}

func TestSettingsCache_ServesSavedValueAfterPut(t *testing.T) {
	db := newTestDB(t)
	cache := NewSettingsCache(db)

	s, err := cache.Get(7)
	require.NoError(t, err)
	assert.Empty(t, s.DefaultGroup)

	updated := &Settings{DefaultGroup: "Research"}
	require.NoError(t, updated.Save(db, 7))
	cache.Put(7, updated)

	s, err = cache.Get(7)
	require.NoError(t, err)
	assert.Equal(t, "Research", s.DefaultGroup)
}

func TestSettingsCache_HitsStoreOncePerUser(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, (&Settings{DefaultGroup: "Research"}).Save(db, 7))

	cache := NewSettingsCache(db)

	first, err := cache.Get(7)
	require.NoError(t, err)

	// a write bypassing the cache is not observed within the request
	require.NoError(t, (&Settings{DefaultGroup: "Changed"}).Save(db, 7))

	second, err := cache.Get(7)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "Research", second.DefaultGroup)
}
