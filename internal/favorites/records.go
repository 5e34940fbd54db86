package favorites

import (
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/controller/record"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

// RecordRef is the host-side view of a genealogical record: enough to
// label and link a favorite. Names and addresses are re-derived on
// every read, so a renamed record is reflected automatically.
type RecordRef struct {
	Name string
	URL  string
}

// RecordResolver finds genealogical records by reference. A missing
// record (deleted underneath a favorite) is reported via ok=false and
// must be tolerated by callers, never treated as fatal.
type RecordResolver interface {
	FindRecord(favType models.FavoriteType, xref string, tree models.Tree) (RecordRef, bool)
}

// UserDirectory resolves user ids to display names, used to label
// another user's shared group in a secondary menu.
type UserDirectory interface {
	RealName(userID uint64) (string, bool)
}

// dbRecordResolver resolves records against the gedcom_record table.
type dbRecordResolver struct {
	db *gorm.DB
}

// NewDBRecordResolver returns a RecordResolver backed by the database.
func NewDBRecordResolver(db *gorm.DB) RecordResolver {
	return &dbRecordResolver{db: db}
}

func (r *dbRecordResolver) FindRecord(favType models.FavoriteType, xref string, tree models.Tree) (RecordRef, bool) {
	rec, err := record.Get(r.db, tree.ID, favType, xref)
	if err != nil {
		return RecordRef{}, false
	}

	return RecordRef{
		Name: rec.Name,
		URL:  RecordPath(tree.Name, favType, xref),
	}, true
}

// dbUserDirectory resolves user names against the users table.
type dbUserDirectory struct {
	db *gorm.DB
}

// NewDBUserDirectory returns a UserDirectory backed by the database.
func NewDBUserDirectory(db *gorm.DB) UserDirectory {
	return &dbUserDirectory{db: db}
}

func (d *dbUserDirectory) RealName(userID uint64) (string, bool) {
	var u models.User
	if err := d.db.First(&u, userID).Error; err != nil {
		return "", false
	}
	if u.RealName != "" {
		return u.RealName, true
	}

	return u.Username, true
}
