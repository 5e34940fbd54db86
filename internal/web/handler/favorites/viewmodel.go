package favorites

import (
	"strconv"

	"github.com/kinfolium/kinfolium/internal/db/controller/favorite"
	"github.com/kinfolium/kinfolium/internal/db/models"
	"github.com/kinfolium/kinfolium/internal/favorites"
)

// SecondaryOption is one selectable secondary-menu source: a shared
// group of some user, rendered as a labeled choice.
type SecondaryOption struct {
	Value    string
	Label    string
	Selected bool
}

// viewModel is everything the settings template needs for one render.
type viewModel struct {
	Buckets          []*favorites.Bucket
	Settings         *favorites.Settings
	SharedKeys       map[string]bool
	SecondaryOptions []SecondaryOption
}

// buildView loads and reconciles the page state for one user and tree.
func (s *Service) buildView(user models.User, tree models.Tree) (*viewModel, error) {
	favs, err := favorite.ListByUser(s.db, user.ID, tree.ID)
	if err != nil {
		return nil, err
	}
	part := favorites.NewPartition(favs)

	settings, err := favorites.LoadSettings(s.db, user.ID)
	if err != nil {
		return nil, err
	}

	shared, err := favorites.LoadShared(s.db, user.ID)
	if err != nil {
		return nil, err
	}

	sharedKeys := make(map[string]bool, len(shared))
	for _, name := range shared {
		sharedKeys[favorites.GroupNamed(name).Key()] = true
	}

	options, err := s.secondaryOptions(user, part, settings)
	if err != nil {
		return nil, err
	}

	return &viewModel{
		Buckets:          part.Groups(),
		Settings:         settings,
		SharedKeys:       sharedKeys,
		SecondaryOptions: options,
	}, nil
}

// secondaryOptions lists every group the user may pick as a secondary
// menu source: their own groups, plus the groups other users share.
func (s *Service) secondaryOptions(user models.User, part *favorites.Partition, settings *favorites.Settings) ([]SecondaryOption, error) {
	selected := make(map[string]bool, len(settings.Secondary))
	for _, sel := range settings.Secondary {
		selected[sel] = true
	}

	var options []SecondaryOption

	ownerLabel := user.RealName
	if ownerLabel == "" {
		ownerLabel = user.Username
	}

	for _, bucket := range part.Groups() {
		sel := favorites.SecondarySelector{OwnerID: user.ID, Group: bucket.Group}
		options = append(options, SecondaryOption{
			Value:    sel.String(),
			Label:    ownerLabel + ": " + bucket.Group.Caption(),
			Selected: selected[sel.String()],
		})
	}

	var others []models.User
	if err := s.db.Where("id <> ? AND active = ?", user.ID, true).Order("id").Find(&others).Error; err != nil {
		return nil, err
	}

	for _, other := range others {
		shared, err := favorites.LoadShared(s.db, other.ID)
		if err != nil {
			return nil, err
		}

		label := other.RealName
		if label == "" {
			label = other.Username
		}
		if label == "" {
			label = "User " + strconv.FormatUint(other.ID, 10)
		}

		for _, name := range shared {
			sel := favorites.SecondarySelector{OwnerID: other.ID, Group: favorites.GroupNamed(name)}
			options = append(options, SecondaryOption{
				Value:    sel.String(),
				Label:    label + ": " + sel.Group.Caption(),
				Selected: selected[sel.String()],
			})
		}
	}

	return options, nil
}
