package favorites

import (
	"errors"
	"strings"

	"github.com/kinfolium/kinfolium/internal/db/controller/favorite"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

// ToggleAction is a star-menu instruction carried in the query string.
type ToggleAction int

const (
	// ToggleNone means no recognized instruction was present.
	ToggleNone ToggleAction = iota
	// ToggleAdd adds the viewed record to the default group.
	ToggleAdd
	// ToggleRemove removes the viewed record from the favorites.
	ToggleRemove
	// ToggleMove moves the viewed record's favorite to the default group.
	ToggleMove
)

const (
	// TokenAdd requests adding the viewed record to the favorites.
	TokenAdd = "favorites-menu-true"
	// TokenRemove requests removing the viewed record from the favorites.
	TokenRemove = "favorites-menu-false"
	// TokenMove requests moving the viewed record to the default group.
	TokenMove = "favorites-menu-move"
)

// ParseToggle scans a raw query string for toggle control tokens.
// It returns the requested action plus every unrecognized, non-empty
// token unchanged, so arbitrary caller-supplied query parameters
// survive a round trip through the generated toggle links.
func ParseToggle(rawQuery string) (ToggleAction, []string) {
	action := ToggleNone

	var extras []string
	for _, token := range strings.Split(rawQuery, "&") {
		switch token {
		case TokenAdd:
			action = ToggleAdd
		case TokenRemove:
			action = ToggleRemove
		case TokenMove:
			action = ToggleMove
		case "":
			// drop empty parameters
		default:
			extras = append(extras, token)
		}
	}

	return action, extras
}

// ToggleResult describes the state after a toggle was applied.
type ToggleResult struct {
	// Favorited is the new favorite status of the viewed record.
	Favorited bool
	// Group is the group the favorite now belongs to (when favorited).
	Group Group
	// Extras are the pass-through query tokens to embed in the next
	// toggle link.
	Extras []string
	// Notice is a user-visible flash message, empty when nothing
	// noteworthy happened.
	Notice string
}

// Toggle applies a single star-menu instruction for the viewed record.
// At most one structural store change happens per invocation, and both
// directions are idempotent: adding an existing favorite and removing
// an absent one are no-ops.
func (e *Engine) Toggle(userID uint64, tree models.Tree, viewed Viewed, action ToggleAction, extras []string, def Group) (ToggleResult, error) {
	res := ToggleResult{Extras: extras, Group: def}

	var (
		existing *models.Favorite
		err      error
	)

	if viewed.Type == models.TypeURL {
		existing, err = favorite.GetByURL(e.db, userID, tree.ID, viewed.URL)
	} else {
		existing, err = favorite.Get(e.db, userID, tree.ID, viewed.Type, viewed.Xref)
	}
	if err != nil && !errors.Is(err, favorite.ErrFavoriteNotFound) {
		return res, err
	}

	switch action {
	case ToggleAdd:
		if existing == nil {
			fav := &models.Favorite{
				UserID: userID,
				TreeID: tree.ID,
				Type:   viewed.Type,
				Xref:   viewed.Xref,
				URL:    viewed.URL,
				Title:  viewed.URL,
				Note:   def.Name(),
			}
			if err := favorite.Create(e.db, fav); err != nil {
				return res, err
			}
			existing = fav
		}
	case ToggleRemove:
		if existing != nil {
			if err := favorite.Delete(e.db, userID, existing.ID); err != nil {
				return res, err
			}
			existing = nil
		}
	case ToggleMove:
		if existing != nil {
			if err := favorite.UpdateGroup(e.db, userID, existing.ID, def.Name()); err != nil {
				return res, err
			}
			existing.Note = def.Name()
			res.Notice = "Moved favorite to group " + def.Caption()
		}
	case ToggleNone:
	}

	res.Favorited = existing != nil
	if existing != nil {
		res.Group = GroupNamed(existing.Note)
	}

	return res, nil
}
