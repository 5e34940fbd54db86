package favorites

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/controller/usersetting"
)

// settingsVersion tags the settings blob encoding so a later format
// change can migrate old rows instead of misreading them.
const settingsVersion = 1

// Settings are one user's favorites-menu preferences. They are stored
// as a versioned JSON blob under SettingNameSettings and lazily default
// to an empty value on first read.
type Settings struct {
	// Version is the blob encoding version.
	Version int `json:"version"`
	// DefaultGroup is the active group's name; empty means the
	// unnamed default group.
	DefaultGroup string `json:"defaultGroup"`
	// Secondary is the ordered list of secondary-menu selectors of the
	// shape "ownerUserID,groupName". An empty selector is the sentinel
	// for "show no secondary menu".
	Secondary []string `json:"secondary"`
}

// SecondarySelector names one secondary menu: another user's (or one's
// own) shared group.
type SecondarySelector struct {
	OwnerID uint64
	Group   Group
}

// ParseSecondarySelector splits an "ownerUserID,groupName" selector.
// The empty sentinel and malformed selectors return ok=false.
func ParseSecondarySelector(s string) (SecondarySelector, bool) {
	owner, group, found := strings.Cut(s, ",")
	if !found {
		return SecondarySelector{}, false
	}

	id, err := strconv.ParseUint(owner, 10, 64)
	if err != nil || id == 0 {
		return SecondarySelector{}, false
	}

	return SecondarySelector{OwnerID: id, Group: GroupNamed(group)}, true
}

// String renders the selector back to its stored form.
func (s SecondarySelector) String() string {
	return strconv.FormatUint(s.OwnerID, 10) + "," + s.Group.Name()
}

// LoadSettings reads one user's favorites-menu settings. A missing row
// yields empty defaults rather than an error.
func LoadSettings(db *gorm.DB, userID uint64) (*Settings, error) {
	s := &Settings{Version: settingsVersion}

	row, err := usersetting.Get(db, userID, SettingNameSettings)
	if errors.Is(err, usersetting.ErrSettingNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(row.SettingValue, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes the settings blob back for one user.
func (s *Settings) Save(db *gorm.DB, userID uint64) error {
	s.Version = settingsVersion

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = usersetting.Set(db, userID, SettingNameSettings, data)

	return err
}

// SharedGroups is the set of group names a user exposes to others as
// secondary-menu sources. It is fully replaced on every save, never
// incrementally patched.
type SharedGroups []string

// LoadShared reads one user's shared-group list; missing rows yield an
// empty list.
func LoadShared(db *gorm.DB, userID uint64) (SharedGroups, error) {
	row, err := usersetting.Get(db, userID, SettingNameShared)
	if errors.Is(err, usersetting.ErrSettingNotFound) {
		return SharedGroups{}, nil
	}
	if err != nil {
		return nil, err
	}

	var shared SharedGroups
	if err := json.Unmarshal(row.SettingValue, &shared); err != nil {
		return nil, err
	}

	return shared, nil
}

// Save replaces the user's shared-group list wholesale.
func (s SharedGroups) Save(db *gorm.DB, userID uint64) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = usersetting.Set(db, userID, SettingNameShared, data)

	return err
}

// Contains reports whether the list shares the given group.
func (s SharedGroups) Contains(g Group) bool {
	for _, name := range s {
		if GroupNamed(name) == g {
			return true
		}
	}

	return false
}

// SettingsCache is a read-through settings cache for the lifetime of
// one request. It is constructed at request start and discarded at
// request end; it must never outlive a request or be shared between
// concurrent ones.
type SettingsCache struct {
	db    *gorm.DB
	cache map[uint64]*Settings
}

// NewSettingsCache creates a per-request settings cache.
func NewSettingsCache(db *gorm.DB) *SettingsCache {
	return &SettingsCache{
		db:    db,
		cache: make(map[uint64]*Settings),
	}
}

// Get returns the settings for a user, hitting the store at most once
// per user per request.
func (c *SettingsCache) Get(userID uint64) (*Settings, error) {
	if s, ok := c.cache[userID]; ok {
		return s, nil
	}

	s, err := LoadSettings(c.db, userID)
	if err != nil {
		return nil, err
	}
	c.cache[userID] = s

	return s, nil
}

// Put replaces the cached settings for a user after a save.
func (c *SettingsCache) Put(userID uint64, s *Settings) {
	c.cache[userID] = s
}
