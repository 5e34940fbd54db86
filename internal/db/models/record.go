package models

// GedcomRecord is the minimal view of a genealogical record this
// service needs: enough to resolve a favorite's display name and to
// confirm an imported xref actually exists in its tree. The full
// record data lives with the host application.
type GedcomRecord struct {
	// ID is the unique identifier for the record row.
	ID uint64 `gorm:"primaryKey"`
	// TreeID is the tree this record belongs to.
	TreeID uint64 `gorm:"column:gedcom_id;not null;uniqueIndex:idx_tree_xref"`
	// Xref is the record identifier, unique within a tree.
	Xref string `gorm:"size:20;not null;uniqueIndex:idx_tree_xref"`
	// Type is the GEDCOM record type (INDI, FAM, OBJE, SOUR, REPO, NOTE).
	Type FavoriteType `gorm:"column:record_type;type:varchar(4);not null"`
	// Name is the display name of the record.
	Name string `gorm:"size:255"`
}

// TableName specifies the database table name for the GedcomRecord model.
func (GedcomRecord) TableName() string {
	return "gedcom_record"
}
