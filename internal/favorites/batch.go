package favorites

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/db/controller/favorite"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

// URLEdit is a text-field edit of one URL favorite. WasTitle and
// WasURL echo the values that were originally rendered, so only rows
// the user actually touched are written back.
type URLEdit struct {
	FavoriteID uint64
	Title      string
	URL        string
	WasTitle   string
	WasURL     string
}

// GroupRename renames the whole group a favorite currently belongs to.
// The favorite id identifies the group through its membership; every
// favorite sharing that group name is renamed.
type GroupRename struct {
	FavoriteID uint64
	NewName    string
}

// Move reassigns one favorite to the group behind a form token.
// DefaultTargetKey is the reserved token for the current default group.
type Move struct {
	FavoriteID uint64
	TargetKey  string
}

// NewURLFavorite creates a URL favorite in the group implied by the
// originating UI section's token.
type NewURLFavorite struct {
	Title    string
	URL      string `validate:"omitempty,url"`
	GroupKey string
}

// BatchRequest is one settings-page save: a batch of partially-ordered
// mutation instructions applied together. Zero-value fields mean the
// corresponding form section was absent from the submission.
type BatchRequest struct {
	// Secondary replaces the secondary-menu selector list when
	// HasSecondary is set.
	Secondary    []string
	HasSecondary bool

	// URLEdits update the title/url text of existing URL favorites.
	URLEdits []URLEdit

	// Selection is the raw default-group radio value: "0" selects the
	// default (empty) group, "-1" selects whatever DefaultGroupText
	// contains, any other value is a favorite id whose current group
	// becomes the selection. Empty means the radio was untouched.
	Selection string
	// NewGroupText overrides the radio when populated.
	NewGroupText string
	// DefaultGroupText is the textbox consulted for the "-1" sentinel.
	DefaultGroupText string

	// RenameDefaultTo renames the current default group when
	// HasRenameDefault is set.
	RenameDefaultTo  string
	HasRenameDefault bool

	// Renames are bulk group renames, one per favorite-id/name pair.
	Renames []GroupRename

	// SharedKeys replaces the shared-group list when HasShared is set;
	// tokens are validated against the group key table and unknown
	// ones dropped silently. ShareNothingKey is the reserved sentinel.
	SharedKeys []string
	HasShared  bool

	// DeleteIDs removes favorites by id, scoped to the calling user.
	DeleteIDs []uint64

	// Moves reassign favorites to groups by token; entries already
	// deleted in the same batch are skipped.
	Moves []Move

	// NewURLs create URL favorites; pairs missing a title or url are
	// ignored.
	NewURLs []NewURLFavorite
}

// BatchResult is the reconciled state after a batch was applied.
type BatchResult struct {
	Partition *Partition
	Settings  *Settings
	Shared    SharedGroups
	// Notices are user-visible flash messages accumulated while
	// applying the batch.
	Notices []string
}

// ApplyBatch applies one settings-page save atomically. The whole
// batch runs in a single transaction, and the group partition is
// recomputed exactly once at the end, so a rename earlier in the batch
// can never strand a move instruction that still references the old
// group token: the live key table is patched as renames happen.
//
// The step order is fixed because later steps depend on group-name
// changes made by earlier ones.
func (e *Engine) ApplyBatch(userID uint64, tree models.Tree, req BatchRequest) (*BatchResult, error) {
	if userID == 0 {
		return nil, favorite.ErrUserZero
	}

	res := &BatchResult{}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		settings, err := LoadSettings(tx, userID)
		if err != nil {
			return err
		}

		favs, err := favorite.ListByUser(tx, userID, tree.ID)
		if err != nil {
			return err
		}

		part := NewPartition(favs)

		// Live token table. Renames below repoint the old token at the
		// new group so tokens generated before this batch stay valid.
		keyed := make(map[string]Group)
		for _, b := range part.Groups() {
			keyed[b.Key] = b.Group
		}

		var (
			settingsChanged bool
			structural      bool
		)

		// 1. Secondary-menu selector list replacement.
		if req.HasSecondary {
			settings.Secondary = normalizeSecondary(req.Secondary)
			settingsChanged = true
		}

		// 2. URL-favorite text edits: only rows whose submitted value
		// differs from the rendered echo.
		for _, edit := range req.URLEdits {
			if edit.Title == edit.WasTitle && edit.URL == edit.WasURL {
				continue
			}

			err := favorite.UpdateText(tx, userID, edit.FavoriteID, strings.TrimSpace(edit.Title), strings.TrimSpace(edit.URL))
			if errors.Is(err, favorite.ErrFavoriteNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			structural = true
		}

		// 3. Default-group selection resolution.
		selection := e.resolveSelection(tx, userID, settings, req)

		// 4. Default-group rename.
		if req.HasRenameDefault {
			oldName := GroupNamed(settings.DefaultGroup).Name()
			newName := GroupNamed(req.RenameDefaultTo).Name()
			if newName != oldName {
				n, err := favorite.RenameGroup(tx, userID, tree.ID, oldName, newName)
				if err != nil {
					return err
				}
				if n > 0 {
					structural = true
				}

				keyed[GroupNamed(oldName).Key()] = GroupNamed(newName)
				if selection == oldName {
					selection = newName
				}
			}
		}

		// 5. Arbitrary group renames.
		for _, rn := range req.Renames {
			fav, err := favorite.GetByID(tx, userID, rn.FavoriteID)
			if errors.Is(err, favorite.ErrFavoriteNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			oldGroup := GroupNamed(fav.Note)
			newGroup := GroupNamed(rn.NewName)
			if newGroup == oldGroup {
				continue
			}

			n, err := favorite.RenameGroup(tx, userID, tree.ID, oldGroup.Name(), newGroup.Name())
			if err != nil {
				return err
			}
			if n > 0 {
				structural = true
			}

			keyed[oldGroup.Key()] = newGroup
			if selection == oldGroup.Name() {
				selection = newGroup.Name()
			}
		}

		// 6. Shared-group-list update: full replacement, unknown
		// tokens dropped silently.
		if req.HasShared {
			shared := SharedGroups{}
			for _, key := range req.SharedKeys {
				if key == ShareNothingKey {
					continue
				}

				g, ok := keyed[key]
				if !ok {
					continue
				}
				if !shared.Contains(g) {
					shared = append(shared, g.Name())
				}
			}

			if err := shared.Save(tx, userID); err != nil {
				return err
			}
		}

		// 7. Settings persistence.
		if settingsChanged || selection != settings.DefaultGroup {
			settings.DefaultGroup = selection
			if err := settings.Save(tx, userID); err != nil {
				return err
			}
		}

		// 8. Deletions, scoped to the calling user's own rows.
		deleted := make(map[uint64]bool)
		for _, id := range req.DeleteIDs {
			err := favorite.Delete(tx, userID, id)
			if errors.Is(err, favorite.ErrFavoriteNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			deleted[id] = true
			structural = true
		}

		// 9. Moves.
		for _, mv := range req.Moves {
			if deleted[mv.FavoriteID] {
				continue
			}

			var target Group
			switch {
			case mv.TargetKey == DefaultTargetKey:
				target = GroupNamed(settings.DefaultGroup)
			default:
				g, ok := keyed[mv.TargetKey]
				if !ok {
					log.Warn().
						Uint64("favorite_id", mv.FavoriteID).
						Str("target_key", mv.TargetKey).
						Msg("move target token not in group key table, skipping")
					continue
				}
				target = g
			}

			err := favorite.UpdateGroup(tx, userID, mv.FavoriteID, target.Name())
			if errors.Is(err, favorite.ErrFavoriteNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			structural = true
		}

		// 10. New URL favorites.
		for _, nu := range req.NewURLs {
			title := strings.TrimSpace(nu.Title)
			url := strings.TrimSpace(nu.URL)
			if title == "" || url == "" {
				continue
			}

			if err := e.validate.Var(url, "url"); err != nil {
				res.Notices = append(res.Notices, "Ignored favorite with invalid address: "+url)
				continue
			}

			group := DefaultGroup
			if g, ok := keyed[nu.GroupKey]; ok {
				group = g
			}

			fav := &models.Favorite{
				UserID: userID,
				TreeID: tree.ID,
				Type:   models.TypeURL,
				URL:    url,
				Title:  title,
				Note:   group.Name(),
			}

			err := favorite.Create(tx, fav)
			if errors.Is(err, favorite.ErrFavoriteExists) {
				res.Notices = append(res.Notices, "Favorite already exists: "+url)
				continue
			}
			if err != nil {
				return err
			}
			structural = true
		}

		// 11. Single recomputation for the response.
		if structural {
			favs, err = favorite.ListByUser(tx, userID, tree.ID)
			if err != nil {
				return err
			}
			part = NewPartition(favs)
		}

		shared, err := LoadShared(tx, userID)
		if err != nil {
			return err
		}

		res.Partition = part
		res.Settings = settings
		res.Shared = shared

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// resolveSelection turns the submitted radio/textbox combination into
// an explicit group name. A populated new-group textbox overrides the
// radio; "0" selects the default group; "-1" selects the default-group
// textbox; anything else is read as a favorite id whose current group
// becomes the selection.
func (e *Engine) resolveSelection(tx *gorm.DB, userID uint64, settings *Settings, req BatchRequest) string {
	if name := GroupNamed(req.NewGroupText).Name(); name != "" {
		return name
	}

	switch req.Selection {
	case "":
		return settings.DefaultGroup
	case "0":
		return ""
	case "-1":
		return GroupNamed(req.DefaultGroupText).Name()
	}

	id, err := strconv.ParseUint(req.Selection, 10, 64)
	if err != nil {
		return settings.DefaultGroup
	}

	fav, err := favorite.GetByID(tx, userID, id)
	if err != nil {
		return settings.DefaultGroup
	}

	return GroupNamed(fav.Note).Name()
}

// normalizeSecondary trims selectors and keeps the empty sentinel only
// when it is the sole entry.
func normalizeSecondary(selectors []string) []string {
	out := make([]string, 0, len(selectors))
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := ParseSecondarySelector(s); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return []string{""}
	}

	return out
}
