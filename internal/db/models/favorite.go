// Package models contains database model definitions.
package models

// FavoriteType identifies the kind of reference a favorite holds.
// GEDCOM record types carry an xref into the tree's data; URL favorites
// carry an arbitrary address instead.
type FavoriteType string

const (
	// TypeIndividual references an individual (INDI) record.
	TypeIndividual FavoriteType = "INDI"
	// TypeFamily references a family (FAM) record.
	TypeFamily FavoriteType = "FAM"
	// TypeMedia references a media object (OBJE) record.
	TypeMedia FavoriteType = "OBJE"
	// TypeSource references a source (SOUR) record.
	TypeSource FavoriteType = "SOUR"
	// TypeRepository references a repository (REPO) record.
	TypeRepository FavoriteType = "REPO"
	// TypeNote references a note (NOTE) record.
	TypeNote FavoriteType = "NOTE"
	// TypeURL references an arbitrary page rather than a tree record.
	TypeURL FavoriteType = "URL"
)

// IsGedcom reports whether the type references a record inside a tree
// (as opposed to an arbitrary URL).
func (t FavoriteType) IsGedcom() bool {
	return t != TypeURL && t != ""
}

// Favorite is one saved reference owned by a user within one tree.
//
// Note holds the free-text group label; the empty string is the default
// (unnamed) group. Uniqueness within (user, tree, type, xref) for GEDCOM
// types and (user, tree, url) for URL favorites is enforced by the
// favorite controller before insert, not by a database constraint,
// because URL favorites share an empty xref.
type Favorite struct {
	// ID is the unique identifier for the favorite.
	ID uint64 `gorm:"primaryKey;column:favorite_id"`
	// UserID is the owning user. Favorites are never shared directly;
	// other users see them only through secondary menus.
	UserID uint64 `gorm:"column:user_id;not null;index"`
	// TreeID scopes the favorite to one genealogical tree.
	TreeID uint64 `gorm:"column:gedcom_id;not null;index"`
	// Type is the kind of reference (INDI, FAM, OBJE, SOUR, REPO, NOTE, URL).
	Type FavoriteType `gorm:"column:favorite_type;type:varchar(4);not null"`
	// Xref is the record identifier inside the tree; empty for URL favorites.
	Xref string `gorm:"size:20"`
	// URL is only meaningful for URL favorites. For GEDCOM types the
	// address is re-derived from the record at read time and never stored.
	URL string `gorm:"size:2048"`
	// Title is the display name for URL favorites. For GEDCOM types the
	// name comes from the referenced record at read time.
	Title string `gorm:"size:255"`
	// Note is the group label; empty means the default group.
	Note string `gorm:"size:1000"`
}

// TableName specifies the database table name for the Favorite model.
func (Favorite) TableName() string {
	return "favorite"
}
