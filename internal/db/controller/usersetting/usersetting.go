// Package usersetting provides CRUD operations for per-user key-value settings.
package usersetting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/models"
)

const (
	keyQueryPattern = "user_id = ? AND setting_name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("user setting not found")
	// ErrSettingNameEmpty is returned when the setting name is empty.
	ErrSettingNameEmpty = errors.New("user setting name cannot be empty")
	// ErrUserZero is returned when the user id is zero.
	ErrUserZero = errors.New("user setting user id cannot be zero")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting blob for one user by name.
func Get(db *gorm.DB, userID uint64, name string) (*models.UserSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == 0 {
		return nil, ErrUserZero
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.UserSetting
	result := db.Where(keyQueryPattern, userID, name).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// Set creates or updates a setting blob for one user (upsert operation).
func Set(db *gorm.DB, userID uint64, name string, value []byte) (*models.UserSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if userID == 0 {
		return nil, ErrUserZero
	}
	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.UserSetting
	result := db.Where(keyQueryPattern, userID, name).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = models.UserSetting{
			UserID:       userID,
			SettingName:  name,
			SettingValue: value,
		}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}

		return &setting, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	setting.SettingValue = value
	result = db.Save(&setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return &setting, nil
}

// Delete removes a setting for one user by name.
func Delete(db *gorm.DB, userID uint64, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if userID == 0 {
		return ErrUserZero
	}
	if name == "" {
		return ErrSettingNameEmpty
	}

	result := db.Where(keyQueryPattern, userID, name).Delete(&models.UserSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
