// Package favorites implements the favorites-menu core: deriving the
// currently viewed record from the request path, partitioning a user's
// favorites into named groups, applying star-toggle and settings-page
// mutations, assembling the menu, and importing/exporting favorite lists.
package favorites

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// SettingNameSettings is the user-setting key for the serialized
	// favorites-menu settings blob.
	SettingNameSettings = "favorites-menu-settings"
	// SettingNameShared is the user-setting key for the shared-group list.
	SettingNameShared = "favorites-menu-shared"

	// DefaultTargetKey is the reserved move-target token meaning
	// "move to the current default group".
	DefaultTargetKey = "favorites-menu-default"
	// ShareNothingKey is the reserved shared-list token meaning
	// "share no group at all".
	ShareNothingKey = "favorites-menu-share-none"

	groupKeyLen = 8 // bytes of the digest kept for the form token
)

// Group is the canonical representation of a favorite's group label.
// The zero value is the default (unnamed) group; empty and missing
// labels collapse into it, so the historic "either empty string or
// NULL" ambiguity never leaves the store boundary.
type Group struct {
	name string
}

// DefaultGroup is the unnamed group every user implicitly has.
var DefaultGroup = Group{}

// GroupNamed returns the canonical group for a free-text label.
// Whitespace-only labels collapse into the default group.
func GroupNamed(name string) Group {
	return Group{name: strings.TrimSpace(name)}
}

// IsDefault reports whether g is the default (unnamed) group.
func (g Group) IsDefault() bool {
	return g.name == ""
}

// Name returns the stored label, empty for the default group.
func (g Group) Name() string {
	return g.name
}

// Caption returns the display label of the group, naming the default
// group explicitly.
func (g Group) Caption() string {
	if g.IsDefault() {
		return "Favorites"
	}

	return g.name
}

// Key returns the stable opaque token for this group, safe to embed in
// form control values. It is a pure function of the name alone, so it
// survives regeneration within and across requests. The default
// group's key is defined and reserved.
func (g Group) Key() string {
	sum := sha256.Sum256([]byte(g.name))
	return hex.EncodeToString(sum[:groupKeyLen])
}
