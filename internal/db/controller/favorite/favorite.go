// Package favorite provides CRUD operations for a user's favorite entries.
package favorite

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

const (
	ownerQueryPattern  = "user_id = ?"
	recordQueryPattern = "user_id = ? AND gedcom_id = ? AND favorite_type = ? AND xref = ?"
	urlQueryPattern    = "user_id = ? AND gedcom_id = ? AND favorite_type = ? AND url = ?"
)

var (
	// ErrFavoriteNotFound is returned when a favorite is not found.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrFavoriteExists is returned when an equivalent favorite already exists.
	ErrFavoriteExists = errors.New("favorite already exists")
	// ErrXrefEmpty is returned when a GEDCOM favorite is created without an xref.
	ErrXrefEmpty = errors.New("favorite xref cannot be empty")
	// ErrURLEmpty is returned when a URL favorite is created without an address.
	ErrURLEmpty = errors.New("favorite url cannot be empty")
	// ErrUserZero is returned when an operation is attempted without a user scope.
	ErrUserZero = errors.New("favorite user id cannot be zero")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a GEDCOM-type favorite by its natural key.
func Get(db *gorm.DB, userID, treeID uint64, favType models.FavoriteType, xref string) (*models.Favorite, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == 0 {
		return nil, ErrUserZero
	}

	var fav models.Favorite
	result := db.Where(recordQueryPattern, userID, treeID, favType, xref).First(&fav)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, result.Error
	}

	return &fav, nil
}

// GetByURL retrieves a URL-type favorite by its address.
func GetByURL(db *gorm.DB, userID, treeID uint64, url string) (*models.Favorite, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == 0 {
		return nil, ErrUserZero
	}

	var fav models.Favorite
	result := db.Where(urlQueryPattern, userID, treeID, models.TypeURL, url).First(&fav)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, result.Error
	}

	return &fav, nil
}

// GetByID retrieves a favorite by id, scoped to the owning user.
// Another user's favorite is reported as not found, never returned.
func GetByID(db *gorm.DB, userID, id uint64) (*models.Favorite, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == 0 {
		return nil, ErrUserZero
	}

	var fav models.Favorite
	result := db.Where(ownerQueryPattern, userID).First(&fav, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, result.Error
	}

	return &fav, nil
}

// ListByUser retrieves all favorites one user holds in one tree,
// ordered by insertion.
func ListByUser(db *gorm.DB, userID, treeID uint64) ([]models.Favorite, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == 0 {
		return nil, ErrUserZero
	}

	var favs []models.Favorite
	result := db.
		Where("user_id = ? AND gedcom_id = ?", userID, treeID).
		Order("favorite_id").
		Find(&favs)
	if result.Error != nil {
		return nil, result.Error
	}

	return favs, nil
}

// Create inserts a new favorite after checking the uniqueness invariant:
// at most one favorite per (user, tree, type, xref) for GEDCOM types,
// and per (user, tree, url) for URL favorites.
func Create(db *gorm.DB, fav *models.Favorite) error {
	if db == nil {
		return ErrDBNil
	}
	if fav.UserID == 0 {
		return ErrUserZero
	}

	var (
		existing *models.Favorite
		err      error
	)

	if fav.Type == models.TypeURL {
		if fav.URL == "" {
			return ErrURLEmpty
		}
		existing, err = GetByURL(db, fav.UserID, fav.TreeID, fav.URL)
	} else {
		if fav.Xref == "" {
			return ErrXrefEmpty
		}
		existing, err = Get(db, fav.UserID, fav.TreeID, fav.Type, fav.Xref)
	}

	if err == nil && existing != nil {
		return ErrFavoriteExists
	}
	if !errors.Is(err, ErrFavoriteNotFound) {
		return err
	}

	return db.Create(fav).Error
}

// Delete removes a favorite by id, scoped to the owning user.
func Delete(db *gorm.DB, userID, id uint64) error {
	if db == nil {
		return ErrDBNil
	}
	if userID == 0 {
		return ErrUserZero
	}

	result := db.Where(ownerQueryPattern, userID).Delete(&models.Favorite{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// UpdateGroup moves one favorite to another group, scoped to the owning user.
func UpdateGroup(db *gorm.DB, userID, id uint64, group string) error {
	if db == nil {
		return ErrDBNil
	}
	if userID == 0 {
		return ErrUserZero
	}

	result := db.Model(&models.Favorite{}).
		Where("favorite_id = ? AND user_id = ?", id, userID).
		Update("note", group)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// RenameGroup renames a group across all of one user's favorites in one
// tree and returns how many rows changed. The empty old name matches
// both NULL and '' notes, since both historically mean "no group".
func RenameGroup(db *gorm.DB, userID, treeID uint64, oldName, newName string) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}
	if userID == 0 {
		return 0, ErrUserZero
	}

	query := db.Model(&models.Favorite{}).
		Where("user_id = ? AND gedcom_id = ?", userID, treeID)

	if oldName == "" {
		query = query.Where("note = '' OR note IS NULL")
	} else {
		query = query.Where("note = ?", oldName)
	}

	result := query.Update("note", newName)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// UpdateText updates the stored title and url of a URL-type favorite,
// scoped to the owning user. GEDCOM favorites derive both at read time
// and are never text-edited.
func UpdateText(db *gorm.DB, userID, id uint64, title, url string) error {
	if db == nil {
		return ErrDBNil
	}
	if userID == 0 {
		return ErrUserZero
	}

	result := db.Model(&models.Favorite{}).
		Where("favorite_id = ? AND user_id = ? AND favorite_type = ?", id, userID, models.TypeURL).
		Updates(map[string]interface{}{"title": title, "url": url})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}
