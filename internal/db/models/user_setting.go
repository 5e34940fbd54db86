package models

// UserSetting is a generic per-user key-value blob row. The favorites
// menu stores its serialized settings and shared-group list here under
// fixed setting names.
type UserSetting struct {
	// ID is the unique identifier for the setting row.
	ID uint64 `gorm:"primaryKey"`
	// UserID is the owning user.
	UserID uint64 `gorm:"column:user_id;not null;uniqueIndex:idx_user_setting"`
	// SettingName is the key, fixed per consumer.
	SettingName string `gorm:"size:100;not null;uniqueIndex:idx_user_setting"`
	// SettingValue is the serialized value.
	SettingValue []byte `gorm:"type:blob"`
}

// TableName specifies the database table name for the UserSetting model.
func (UserSetting) TableName() string {
	return "user_setting"
}
