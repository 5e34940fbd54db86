package favorite

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Favorite{}))

	return db
}

func TestCreate_Validation(t *testing.T) {
	db := newTestDB(t)

	assert.ErrorIs(t, Create(nil, &models.Favorite{UserID: 1}), ErrDBNil)
	assert.ErrorIs(t, Create(db, &models.Favorite{}), ErrUserZero)
	assert.ErrorIs(t, Create(db, &models.Favorite{
		UserID: 1, TreeID: 1, Type: models.TypeIndividual,
	}), ErrXrefEmpty)
	assert.ErrorIs(t, Create(db, &models.Favorite{
		UserID: 1, TreeID: 1, Type: models.TypeURL,
	}), ErrURLEmpty)
}

func TestCreate_DuplicateGedcomFavorite(t *testing.T) {
	db := newTestDB(t)

	fav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1"}
	require.NoError(t, Create(db, &fav))

	dup := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1", Note: "Research"}
	assert.ErrorIs(t, Create(db, &dup), ErrFavoriteExists)

	// same xref for another user or tree is fine
	other := models.Favorite{UserID: 2, TreeID: 1, Type: models.TypeIndividual, Xref: "I1"}
	assert.NoError(t, Create(db, &other))

	otherTree := models.Favorite{UserID: 1, TreeID: 2, Type: models.TypeIndividual, Xref: "I1"}
	assert.NoError(t, Create(db, &otherTree))
}

func TestCreate_DuplicateURLFavorite(t *testing.T) {
	db := newTestDB(t)

	fav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeURL, URL: "https://example.com"}
	require.NoError(t, Create(db, &fav))

	dup := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeURL, URL: "https://example.com"}
	assert.ErrorIs(t, Create(db, &dup), ErrFavoriteExists)

	// several URL favorites may share the empty xref
	second := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeURL, URL: "https://example.org"}
	assert.NoError(t, Create(db, &second))
}

func TestGetByID_OwnerScoped(t *testing.T) {
	db := newTestDB(t)

	fav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1"}
	require.NoError(t, Create(db, &fav))

	got, err := GetByID(db, 1, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "I1", got.Xref)

	_, err = GetByID(db, 2, fav.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestDelete_OwnerScoped(t *testing.T) {
	db := newTestDB(t)

	fav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1"}
	require.NoError(t, Create(db, &fav))

	assert.ErrorIs(t, Delete(db, 2, fav.ID), ErrFavoriteNotFound)
	assert.NoError(t, Delete(db, 1, fav.ID))
	assert.ErrorIs(t, Delete(db, 1, fav.ID), ErrFavoriteNotFound)
}

func TestListByUser_OrderedByInsertion(t *testing.T) {
	db := newTestDB(t)

	for _, xref := range []string{"I3", "I1", "I2"} {
		require.NoError(t, Create(db, &models.Favorite{
			UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: xref,
		}))
	}

	favs, err := ListByUser(db, 1, 1)
	require.NoError(t, err)
	require.Len(t, favs, 3)
	assert.Equal(t, "I3", favs[0].Xref)
	assert.Equal(t, "I1", favs[1].Xref)
	assert.Equal(t, "I2", favs[2].Xref)
}

func TestUpdateGroup(t *testing.T) {
	db := newTestDB(t)

	fav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1"}
	require.NoError(t, Create(db, &fav))

	require.NoError(t, UpdateGroup(db, 1, fav.ID, "Research"))

	got, err := GetByID(db, 1, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "Research", got.Note)

	assert.ErrorIs(t, UpdateGroup(db, 2, fav.ID, "Research"), ErrFavoriteNotFound)
}

func TestRenameGroup(t *testing.T) {
	db := newTestDB(t)

	for i, note := range []string{"Research", "Research", "", "Other"} {
		require.NoError(t, Create(db, &models.Favorite{
			UserID: 1, TreeID: 1, Type: models.TypeIndividual,
			Xref: "I" + string(rune('1'+i)), Note: note,
		}))
	}

	n, err := RenameGroup(db, 1, 1, "Research", "History")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	favs, err := ListByUser(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "History", favs[0].Note)
	assert.Equal(t, "History", favs[1].Note)
	assert.Equal(t, "Other", favs[3].Note)
}

func TestRenameGroup_EmptyOldNameMatchesUnnamed(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Create(db, &models.Favorite{
		UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1",
	}))
	require.NoError(t, Create(db, &models.Favorite{
		UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I2", Note: "Research",
	}))

	n, err := RenameGroup(db, 1, 1, "", "Starred")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	favs, err := ListByUser(db, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Starred", favs[0].Note)
	assert.Equal(t, "Research", favs[1].Note)
}

func TestUpdateText_URLFavoritesOnly(t *testing.T) {
	db := newTestDB(t)

	urlFav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeURL, URL: "https://example.com", Title: "Old"}
	require.NoError(t, Create(db, &urlFav))

	gedcomFav := models.Favorite{UserID: 1, TreeID: 1, Type: models.TypeIndividual, Xref: "I1"}
	require.NoError(t, Create(db, &gedcomFav))

	require.NoError(t, UpdateText(db, 1, urlFav.ID, "New", "https://example.org"))

	got, err := GetByID(db, 1, urlFav.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "https://example.org", got.URL)

	// record favorites derive their text and reject edits
	assert.ErrorIs(t, UpdateText(db, 1, gedcomFav.ID, "X", "Y"), ErrFavoriteNotFound)
}
