// Package tree provides lookup operations for genealogical trees.
package tree

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

var (
	// ErrTreeNotFound is returned when a tree is not found.
	ErrTreeNotFound = errors.New("tree not found")
	// ErrTreeNameEmpty is returned when looking up a tree with an empty name.
	ErrTreeNameEmpty = errors.New("tree name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByName retrieves a tree by its URL-safe name.
func GetByName(db *gorm.DB, name string) (*models.Tree, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrTreeNameEmpty
	}

	var t models.Tree
	result := db.Where("gedcom_name = ?", name).First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTreeNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// GetByID retrieves a tree by its id.
func GetByID(db *gorm.DB, id uint64) (*models.Tree, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var t models.Tree
	result := db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTreeNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// List retrieves all trees.
func List(db *gorm.DB) ([]models.Tree, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var trees []models.Tree
	result := db.Order("gedcom_id").Find(&trees)
	if result.Error != nil {
		return nil, result.Error
	}

	return trees, nil
}
