package favorites

import (
	"strings"

	"github.com/kinfolium/kinfolium/internal/db/controller/favorite"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

// Menu is one rendered navigation entry. The host templating layer is
// responsible for markup; this tree only carries labels, addresses,
// css classes, and order.
type Menu struct {
	Label    string
	Href     string
	Class    string
	Attrs    map[string]string
	Children []*Menu
}

// NewMenu creates a menu entry.
func NewMenu(label, href, class string, children ...*Menu) *Menu {
	return &Menu{
		Label:    label,
		Href:     href,
		Class:    class,
		Children: children,
	}
}

// AddChild appends a child entry and returns the parent for chaining.
func (m *Menu) AddChild(child *Menu) *Menu {
	m.Children = append(m.Children, child)
	return m
}

// BuildMenu assembles the favorites menu for one request: the star
// toggle state and action link first, then the active group's members,
// then any configured secondary menus. An unauthenticated user (id 0)
// gets no menu at all.
//
// Any toggle instruction in the query is applied before assembly, so
// the menu always reflects the post-toggle state. The returned notice,
// when non-empty, should be flashed to the user.
func (e *Engine) BuildMenu(userID uint64, tree models.Tree, path, rawQuery string, cache *SettingsCache) (*Menu, string, error) {
	if userID == 0 {
		return nil, "", nil
	}

	settings, err := cache.Get(userID)
	if err != nil {
		return nil, "", err
	}
	def := GroupNamed(settings.DefaultGroup)

	viewed := ResolveViewedOrURL(path, rawQuery)
	action, extras := ParseToggle(rawQuery)

	toggled, err := e.Toggle(userID, tree, viewed, action, extras, def)
	if err != nil {
		return nil, "", err
	}

	var (
		prefix    string
		class     string
		nextToken string
		caption   string
	)

	if toggled.Favorited {
		prefix = "[*] "
		class = "favorites-menu-true"
		nextToken = TokenRemove
		caption = "Remove from favorites"
	} else {
		prefix = "[ ] "
		class = "favorites-menu-false"
		nextToken = TokenAdd
		caption = "Add favorite"
	}

	top := NewMenu(prefix+"Favorite", "#", class)
	top.Attrs = map[string]string{"rel": "nofollow"}

	top.AddChild(NewMenu(
		"-- "+caption+" --",
		toggleHref(path, toggled.Extras, nextToken),
		"favorites-menu-action",
	))

	favs, err := favorite.ListByUser(e.db, userID, tree.ID)
	if err != nil {
		return nil, "", err
	}
	part := NewPartition(favs)

	if bucket := part.Bucket(def); bucket != nil {
		for _, fav := range bucket.Members() {
			if item := e.menuItem(fav, tree); item != nil {
				top.AddChild(item)
			}
		}
	}

	for _, selector := range settings.Secondary {
		sub, err := e.secondaryMenu(userID, tree, selector)
		if err != nil {
			return nil, "", err
		}
		if sub != nil {
			top.AddChild(sub)
		}
	}

	return top, toggled.Notice, nil
}

// menuItem renders one favorite as a menu entry. A GEDCOM favorite
// whose record has been deleted renders as nothing rather than
// breaking the menu.
func (e *Engine) menuItem(fav models.Favorite, tree models.Tree) *Menu {
	if fav.Type == models.TypeURL {
		label := fav.Title
		if label == "" {
			label = fav.URL
		}

		return NewMenu(label, fav.URL, "favorites-menu-URL favorites-menu-item")
	}

	ref, ok := e.records.FindRecord(fav.Type, fav.Xref, tree)
	if !ok {
		return nil
	}

	return NewMenu(
		string(fav.Type)+": "+ref.Name,
		ref.URL,
		"favorites-menu-"+string(fav.Type)+" favorites-menu-item",
	)
}

// secondaryMenu renders one "ownerUserID,groupName" selector as a
// read-only submenu. Selectors pointing at groups the owner no longer
// shares, and the empty sentinel, render as nothing.
func (e *Engine) secondaryMenu(viewerID uint64, tree models.Tree, selector string) (*Menu, error) {
	sel, ok := ParseSecondarySelector(selector)
	if !ok {
		return nil, nil
	}

	// Own groups need no sharing consent; anyone else's do.
	if sel.OwnerID != viewerID {
		shared, err := LoadShared(e.db, sel.OwnerID)
		if err != nil {
			return nil, err
		}
		if !shared.Contains(sel.Group) {
			return nil, nil
		}
	}

	favs, err := favorite.ListByUser(e.db, sel.OwnerID, tree.ID)
	if err != nil {
		return nil, err
	}

	bucket := NewPartition(favs).Bucket(sel.Group)
	if bucket == nil || bucket.Count == 0 {
		return nil, nil
	}

	ownerName, ok := e.users.RealName(sel.OwnerID)
	if !ok {
		return nil, nil
	}

	sub := NewMenu(ownerName+": "+sel.Group.Caption(), "#", "favorites-menu-secondary")
	for _, fav := range bucket.Members() {
		if item := e.menuItem(fav, tree); item != nil {
			sub.AddChild(item)
		}
	}

	return sub, nil
}

// toggleHref rebuilds a toggle link: the bare path, the surviving
// pass-through arguments, and the next toggle token last.
func toggleHref(path string, extras []string, token string) string {
	args := make([]string, 0, len(extras)+1)
	args = append(args, extras...)
	args = append(args, token)

	return path + "?" + strings.Join(args, "&")
}
