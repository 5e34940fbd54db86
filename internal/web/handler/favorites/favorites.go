// Package favorites serves the favorites settings page: the group
// overview with its rename, move, share, and delete controls, and the
// form handler that applies a submitted page as one batch.
package favorites

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/config"
	treectl "github.com/kinfolium/kinfolium/internal/db/controller/tree"
	"github.com/kinfolium/kinfolium/internal/db/models"
	"github.com/kinfolium/kinfolium/internal/favorites"
	"github.com/kinfolium/kinfolium/internal/web/flash"
	"github.com/kinfolium/kinfolium/internal/web/handler"
	"github.com/kinfolium/kinfolium/internal/web/navigation"
)

// Service is the favorites settings handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *favorites.Engine
}

// Handler is the favorites settings handler.
var Handler = Service{}

// Init initializes the favorites settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = favorites.NewEngine(db, favorites.NewDBRecordResolver(db), favorites.NewDBUserDirectory(db))

	app.Route("/tree/:tree/favorites", func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get renders the favorites settings page.
func (s *Service) Get(c *fiber.Ctx) error {
	user := handler.CurrentUser(c)
	if user.ID == 0 {
		return c.Redirect("/login")
	}

	tree, err := treectl.GetByName(s.db, c.Params("tree"))
	if err != nil {
		return fiber.ErrNotFound
	}

	view, err := s.buildView(user, *tree)
	if err != nil {
		return err
	}

	return s.render(c, *tree, view)
}

// Post applies one submitted settings page as a single batch and
// re-renders the reconciled state.
func (s *Service) Post(c *fiber.Ctx) error {
	user := handler.CurrentUser(c)
	if user.ID == 0 {
		return c.Redirect("/login")
	}

	tree, err := treectl.GetByName(s.db, c.Params("tree"))
	if err != nil {
		return fiber.ErrNotFound
	}

	req := parseBatch(c)

	result, err := s.engine.ApplyBatch(user.ID, *tree, req)
	if err != nil {
		return err
	}

	flash.Add(c, result.Notices...)

	return c.Redirect(c.Path())
}

// render assembles the template data for the settings page.
func (s *Service) render(c *fiber.Ctx, tree models.Tree, view *viewModel) error {
	nav := navigation.ForTree("Favorites", tree.Title, tree.Name, "favorites").
		AddBreadcrumb("Favorites", c.Path(), true)

	return c.Render("favorites", fiber.Map{
		"Title":            s.cfg.Title,
		"CurrentUser":      handler.CurrentUser(c),
		"Nav":              nav,
		"Tree":             tree,
		"Buckets":          view.Buckets,
		"Settings":         view.Settings,
		"SharedKeys":       view.SharedKeys,
		"SecondaryOptions": view.SecondaryOptions,
		"DefaultTargetKey": favorites.DefaultTargetKey,
		"ShareNothingKey":  favorites.ShareNothingKey,
		"Flashes":          flash.Drain(c),
	}, handler.BaseLayout)
}
