package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinfolium/kinfolium/internal/db/controller/favorite"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

func TestBuildMenu_AnonymousGetsNoMenu(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	menu, notice, err := engine.BuildMenu(0, tree, "/tree/demo/individual/I1", "", NewSettingsCache(db))
	require.NoError(t, err)
	assert.Nil(t, menu)
	assert.Empty(t, notice)
}

func TestBuildMenu_UnfavoritedRecord(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	menu, notice, err := engine.BuildMenu(aliceID, tree, "/tree/demo/individual/I1", "", NewSettingsCache(db))
	require.NoError(t, err)
	require.NotNil(t, menu)
	assert.Empty(t, notice)

	assert.Equal(t, "[ ] Favorite", menu.Label)
	assert.Equal(t, "favorites-menu-false", menu.Class)
	assert.Equal(t, "nofollow", menu.Attrs["rel"])

	require.NotEmpty(t, menu.Children)
	action := menu.Children[0]
	assert.Equal(t, "-- Add favorite --", action.Label)
	assert.Equal(t, "/tree/demo/individual/I1?"+TokenAdd, action.Href)
}

func TestBuildMenu_ToggleAddThenRender(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	// the add-token request both stores the favorite and renders the
	// post-toggle state
	menu, _, err := engine.BuildMenu(aliceID, tree, "/tree/demo/individual/I1", TokenAdd, NewSettingsCache(db))
	require.NoError(t, err)
	require.NotNil(t, menu)

	assert.Equal(t, "[*] Favorite", menu.Label)
	assert.Equal(t, "favorites-menu-true", menu.Class)

	action := menu.Children[0]
	assert.Equal(t, "-- Remove from favorites --", action.Label)
	assert.Equal(t, "/tree/demo/individual/I1?"+TokenRemove, action.Href)

	_, err = favorite.Get(db, aliceID, tree.ID, models.TypeIndividual, "I1")
	assert.NoError(t, err)

	// the record itself shows up as a member entry
	require.Len(t, menu.Children, 2)
	item := menu.Children[1]
	assert.Equal(t, "INDI: John Doe", item.Label)
	assert.Equal(t, "/tree/demo/individual/I1", item.Href)
}

func TestBuildMenu_PassThroughArgumentsSurvive(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	menu, _, err := engine.BuildMenu(aliceID, tree, "/tree/demo/individual/I1", "month=5&year=2020", NewSettingsCache(db))
	require.NoError(t, err)

	action := menu.Children[0]
	assert.Equal(t, "/tree/demo/individual/I1?month=5&year=2020&"+TokenAdd, action.Href)
}

func TestBuildMenu_DeletedRecordRendersNothing(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	require.NoError(t, favorite.Create(db, &models.Favorite{
		UserID: aliceID, TreeID: tree.ID,
		Type: models.TypeIndividual, Xref: "I9", // no such record
	}))

	menu, _, err := engine.BuildMenu(aliceID, tree, "/trees", "", NewSettingsCache(db))
	require.NoError(t, err)

	// only the action child; the dangling favorite is silently dropped
	require.Len(t, menu.Children, 1)
}

func TestBuildMenu_OnlyActiveGroupListed(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	require.NoError(t, favorite.Create(db, &models.Favorite{
		UserID: aliceID, TreeID: tree.ID,
		Type: models.TypeIndividual, Xref: "I1", Note: "Research",
	}))
	require.NoError(t, favorite.Create(db, &models.Favorite{
		UserID: aliceID, TreeID: tree.ID,
		Type: models.TypeIndividual, Xref: "I2",
	}))
	require.NoError(t, (&Settings{DefaultGroup: "Research"}).Save(db, aliceID))

	menu, _, err := engine.BuildMenu(aliceID, tree, "/trees", "", NewSettingsCache(db))
	require.NoError(t, err)

	// action child plus the single Research member; I2 sits in the
	// (inactive) unnamed group
	require.Len(t, menu.Children, 2)
	assert.Equal(t, "INDI: John Doe", menu.Children[1].Label)
}

func TestBuildMenu_SecondaryMenuNeedsConsent(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	// bob keeps a Research group
	require.NoError(t, favorite.Create(db, &models.Favorite{
		UserID: bobID, TreeID: tree.ID,
		Type: models.TypeIndividual, Xref: "I2", Note: "Research",
	}))

	// alice subscribes to it
	sel := SecondarySelector{OwnerID: bobID, Group: GroupNamed("Research")}
	require.NoError(t, (&Settings{Secondary: []string{sel.String()}}).Save(db, aliceID))

	// not shared yet: no submenu
	menu, _, err := engine.BuildMenu(aliceID, tree, "/trees", "", NewSettingsCache(db))
	require.NoError(t, err)
	require.Len(t, menu.Children, 1)

	// once bob shares the group the submenu appears
	require.NoError(t, SharedGroups{"Research"}.Save(db, bobID))

	menu, _, err = engine.BuildMenu(aliceID, tree, "/trees", "", NewSettingsCache(db))
	require.NoError(t, err)
	require.Len(t, menu.Children, 2)

	sub := menu.Children[1]
	assert.Equal(t, "bob: Research", sub.Label)
	assert.Equal(t, "favorites-menu-secondary", sub.Class)
	require.Len(t, sub.Children, 1)
	assert.Equal(t, "INDI: Jane Doe", sub.Children[0].Label)
}

func TestBuildMenu_OwnGroupNeedsNoConsent(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	require.NoError(t, favorite.Create(db, &models.Favorite{
		UserID: aliceID, TreeID: tree.ID,
		Type: models.TypeFamily, Xref: "F1", Note: "Research",
	}))

	sel := SecondarySelector{OwnerID: aliceID, Group: GroupNamed("Research")}
	require.NoError(t, (&Settings{Secondary: []string{sel.String()}}).Save(db, aliceID))

	menu, _, err := engine.BuildMenu(aliceID, tree, "/trees", "", NewSettingsCache(db))
	require.NoError(t, err)

	require.Len(t, menu.Children, 2)
	assert.Equal(t, "Alice Example: Research", menu.Children[1].Label)
}

func TestBuildMenu_MoveNoticeReturned(t *testing.T) {
	engine, db, tree := newTestEngine(t)

	require.NoError(t, favorite.Create(db, &models.Favorite{
		UserID: aliceID, TreeID: tree.ID,
		Type: models.TypeIndividual, Xref: "I1", Note: "Research",
	}))
	require.NoError(t, (&Settings{DefaultGroup: "Archive"}).Save(db, aliceID))

	_, notice, err := engine.BuildMenu(aliceID, tree, "/tree/demo/individual/I1", TokenMove, NewSettingsCache(db))
	require.NoError(t, err)
	assert.Equal(t, "Moved favorite to group Archive", notice)

	fav, err := favorite.Get(db, aliceID, tree.ID, models.TypeIndividual, "I1")
	require.NoError(t, err)
	assert.Equal(t, "Archive", fav.Note)
}
