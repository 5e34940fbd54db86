package favorites

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kinfolium/kinfolium/internal/favorites"
)

// Form field naming. Static fields carry fixed names; per-row fields
// suffix the favorite id or group token:
//
//	secondary-submitted, secondary     secondary-menu selector list
//	selection, new-group,
//	default-group-name                 default-group choice
//	rename-default                     default-group rename textbox
//	shared-submitted, shared           shared-group key list
//	title-<id>, url-<id>,
//	was-title-<id>, was-url-<id>       URL favorite text edits
//	rename-<id>                        group rename via a member row
//	delete-<id>                        delete checkbox
//	move-<id>                          move target group token
//	new-title-<key>, new-url-<key>     new URL favorite per group section
const (
	fieldSecondarySubmitted = "secondary-submitted"
	fieldSecondary          = "secondary"
	fieldSelection          = "selection"
	fieldNewGroup           = "new-group"
	fieldDefaultGroupName   = "default-group-name"
	fieldRenameDefault      = "rename-default"
	fieldSharedSubmitted    = "shared-submitted"
	fieldShared             = "shared"

	prefixTitle    = "title-"
	prefixURL      = "url-"
	prefixWasTitle = "was-title-"
	prefixWasURL   = "was-url-"
	prefixRename   = "rename-"
	prefixDelete   = "delete-"
	prefixMove     = "move-"
	prefixNewTitle = "new-title-"
	prefixNewURL   = "new-url-"
)

// parseBatch reads one submitted settings page into a batch request.
// Unknown fields are ignored; rows with malformed favorite ids are
// dropped rather than failing the whole submission.
func parseBatch(c *fiber.Ctx) favorites.BatchRequest {
	args := c.Context().PostArgs()

	req := favorites.BatchRequest{
		Selection:        c.FormValue(fieldSelection),
		NewGroupText:     c.FormValue(fieldNewGroup),
		DefaultGroupText: c.FormValue(fieldDefaultGroupName),
	}

	if args.Has(fieldSecondarySubmitted) {
		req.HasSecondary = true
		for _, v := range args.PeekMulti(fieldSecondary) {
			req.Secondary = append(req.Secondary, string(v))
		}
	}

	if args.Has(fieldRenameDefault) {
		req.HasRenameDefault = true
		req.RenameDefaultTo = c.FormValue(fieldRenameDefault)
	}

	if args.Has(fieldSharedSubmitted) {
		req.HasShared = true
		for _, v := range args.PeekMulti(fieldShared) {
			req.SharedKeys = append(req.SharedKeys, string(v))
		}
	}

	var (
		titles    = map[uint64]string{}
		urls      = map[uint64]string{}
		wasTitles = map[uint64]string{}
		wasURLs   = map[uint64]string{}
		renames   = map[uint64]string{}
		moves     = map[uint64]string{}
		newTitles = map[string]string{}
		newURLs   = map[string]string{}
		deleteIDs []uint64
	)

	args.VisitAll(func(key, value []byte) {
		k, v := string(key), string(value)

		switch {
		case strings.HasPrefix(k, prefixWasTitle):
			if id, ok := favoriteID(k, prefixWasTitle); ok {
				wasTitles[id] = v
			}
		case strings.HasPrefix(k, prefixWasURL):
			if id, ok := favoriteID(k, prefixWasURL); ok {
				wasURLs[id] = v
			}
		case strings.HasPrefix(k, prefixTitle):
			if id, ok := favoriteID(k, prefixTitle); ok {
				titles[id] = v
			}
		case strings.HasPrefix(k, prefixNewTitle):
			newTitles[k[len(prefixNewTitle):]] = v
		case strings.HasPrefix(k, prefixNewURL):
			newURLs[k[len(prefixNewURL):]] = v
		case strings.HasPrefix(k, prefixURL):
			if id, ok := favoriteID(k, prefixURL); ok {
				urls[id] = v
			}
		case strings.HasPrefix(k, prefixRename):
			if id, ok := favoriteID(k, prefixRename); ok {
				renames[id] = v
			}
		case strings.HasPrefix(k, prefixDelete):
			if id, ok := favoriteID(k, prefixDelete); ok {
				deleteIDs = append(deleteIDs, id)
			}
		case strings.HasPrefix(k, prefixMove):
			if id, ok := favoriteID(k, prefixMove); ok {
				moves[id] = v
			}
		}
	})

	for _, id := range sortedIDs(titles, urls) {
		req.URLEdits = append(req.URLEdits, favorites.URLEdit{
			FavoriteID: id,
			Title:      titles[id],
			URL:        urls[id],
			WasTitle:   wasTitles[id],
			WasURL:     wasURLs[id],
		})
	}

	for _, id := range sortedIDs(renames) {
		req.Renames = append(req.Renames, favorites.GroupRename{FavoriteID: id, NewName: renames[id]})
	}

	sort.Slice(deleteIDs, func(i, j int) bool { return deleteIDs[i] < deleteIDs[j] })
	req.DeleteIDs = deleteIDs

	for _, id := range sortedIDs(moves) {
		req.Moves = append(req.Moves, favorites.Move{FavoriteID: id, TargetKey: moves[id]})
	}

	for _, key := range sortedKeys(newTitles, newURLs) {
		title, url := newTitles[key], newURLs[key]
		if title == "" && url == "" {
			continue
		}
		req.NewURLs = append(req.NewURLs, favorites.NewURLFavorite{
			Title:    title,
			URL:      url,
			GroupKey: key,
		})
	}

	return req
}

// favoriteID parses the id suffix of a per-row field name.
func favoriteID(key, prefix string) (uint64, bool) {
	id, err := strconv.ParseUint(key[len(prefix):], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

// sortedIDs merges the key sets of the given maps into one sorted list.
func sortedIDs(maps ...map[uint64]string) []uint64 {
	seen := make(map[uint64]bool)
	for _, m := range maps {
		for id := range m {
			seen[id] = true
		}
	}

	out := make([]uint64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// sortedKeys merges the key sets of the given maps into one sorted list.
func sortedKeys(maps ...map[string]string) []string {
	seen := make(map[string]bool)
	for _, m := range maps {
		for k := range m {
			seen[k] = true
		}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
