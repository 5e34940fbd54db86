package models

// Tree is one genealogical dataset. Every favorite and every record
// lookup is scoped to a tree.
type Tree struct {
	// ID is the unique identifier for the tree.
	ID uint64 `gorm:"primaryKey;column:gedcom_id"`
	// Name is the URL-safe name of the tree, used in request paths.
	Name string `gorm:"column:gedcom_name;unique;size:100;not null"`
	// Title is the display title of the tree.
	Title string `gorm:"size:255"`
}

// TableName specifies the database table name for the Tree model.
func (Tree) TableName() string {
	return "gedcom"
}
