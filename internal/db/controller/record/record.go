// Package record provides lookup operations for genealogical records.
package record

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

var (
	// ErrRecordNotFound is returned when a record is not found.
	ErrRecordNotFound = errors.New("record not found")
	// ErrXrefEmpty is returned when looking up a record with an empty xref.
	ErrXrefEmpty = errors.New("record xref cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a record by tree, type, and xref.
func Get(db *gorm.DB, treeID uint64, recType models.FavoriteType, xref string) (*models.GedcomRecord, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if xref == "" {
		return nil, ErrXrefEmpty
	}

	var rec models.GedcomRecord
	result := db.
		Where("gedcom_id = ? AND record_type = ? AND xref = ?", treeID, recType, xref).
		First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}

	return &rec, nil
}
