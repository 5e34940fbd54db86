package favorites

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tree{},
		&models.GedcomRecord{},
		&models.Favorite{},
		&models.UserSetting{},
	))

	return db
}

// newTestEngine opens a fresh store, seeds one demo tree with a few
// records and two users, and returns the engine plus the tree.
func newTestEngine(t *testing.T) (*Engine, *gorm.DB, models.Tree) {
	t.Helper()

	db := newTestDB(t)

	users := []models.User{
		{Active: true, Username: "alice", Email: "alice@example.com", RealName: "Alice Example"},
		{Active: true, Username: "bob", Email: "bob@example.com"},
	}
	require.NoError(t, db.Create(&users).Error)

	tree := models.Tree{Name: "demo", Title: "Demo Family Tree"}
	require.NoError(t, db.Create(&tree).Error)

	records := []models.GedcomRecord{
		{TreeID: tree.ID, Xref: "I1", Type: models.TypeIndividual, Name: "John Doe"},
		{TreeID: tree.ID, Xref: "I2", Type: models.TypeIndividual, Name: "Jane Doe"},
		{TreeID: tree.ID, Xref: "F1", Type: models.TypeFamily, Name: "Doe family"},
		{TreeID: tree.ID, Xref: "S1", Type: models.TypeSource, Name: "Parish register"},
	}
	require.NoError(t, db.Create(&records).Error)

	engine := NewEngine(db, NewDBRecordResolver(db), NewDBUserDirectory(db))

	return engine, db, tree
}

const (
	aliceID uint64 = 1
	bobID   uint64 = 2
)
