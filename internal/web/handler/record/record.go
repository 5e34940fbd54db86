// Package record serves the per-tree pages: the tree home page and the
// individual record views. These are the pages the favorites menu is
// rendered on, and the pages its toggle links point back at.
package record

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/config"
	recordctl "github.com/kinfolium/kinfolium/internal/db/controller/record"
	treectl "github.com/kinfolium/kinfolium/internal/db/controller/tree"
	"github.com/kinfolium/kinfolium/internal/db/models"
	"github.com/kinfolium/kinfolium/internal/favorites"
	"github.com/kinfolium/kinfolium/internal/web/flash"
	"github.com/kinfolium/kinfolium/internal/web/handler"
	"github.com/kinfolium/kinfolium/internal/web/navigation"
)

// Service is the record page handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *favorites.Engine
}

// Handler is the record page handler.
var Handler = Service{}

// Init initializes the record page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = favorites.NewEngine(db, favorites.NewDBRecordResolver(db), favorites.NewDBUserDirectory(db))

	app.Route("/tree/:tree", func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.GetTree)
		router.Get("/:rtype/:xref", s.GetRecord)
	})

	return nil
}

// GetTree renders a tree's home page.
func (s *Service) GetTree(c *fiber.Ctx) error {
	tree, err := treectl.GetByName(s.db, c.Params("tree"))
	if err != nil {
		return fiber.ErrNotFound
	}

	menu, err := s.buildMenu(c, *tree)
	if err != nil {
		return err
	}

	nav := navigation.ForTree(tree.Title, tree.Title, tree.Name, "home")

	return c.Render("tree", fiber.Map{
		"Title":         s.cfg.Title,
		"CurrentUser":   handler.CurrentUser(c),
		"Nav":           nav,
		"Tree":          tree,
		"FavoritesMenu": menu,
		"Flashes":       flash.Drain(c),
	}, handler.BaseLayout)
}

// GetRecord renders one genealogical record page.
func (s *Service) GetRecord(c *fiber.Ctx) error {
	tree, err := treectl.GetByName(s.db, c.Params("tree"))
	if err != nil {
		return fiber.ErrNotFound
	}

	viewed, ok := favorites.ResolveViewed(c.Path())
	if !ok {
		return fiber.ErrNotFound
	}

	rec, err := recordctl.Get(s.db, tree.ID, viewed.Type, viewed.Xref)
	if err != nil {
		return fiber.ErrNotFound
	}

	menu, err := s.buildMenu(c, *tree)
	if err != nil {
		return err
	}

	nav := navigation.ForTree(rec.Name, tree.Title, tree.Name, "record").
		AddBreadcrumb(rec.Name, c.Path(), true)

	return c.Render("record", fiber.Map{
		"Title":         s.cfg.Title,
		"CurrentUser":   handler.CurrentUser(c),
		"Nav":           nav,
		"Tree":          tree,
		"Record":        rec,
		"FavoritesMenu": menu,
		"Flashes":       flash.Drain(c),
	}, handler.BaseLayout)
}

// buildMenu assembles the favorites menu for the current request,
// applying any toggle instruction carried in the query string. Toggle
// notices become flash messages on the same response.
func (s *Service) buildMenu(c *fiber.Ctx, tree models.Tree) (*favorites.Menu, error) {
	user := handler.CurrentUser(c)
	cache := favorites.NewSettingsCache(s.db)

	menu, notice, err := s.engine.BuildMenu(user.ID, tree, c.Path(), string(c.Request().URI().QueryString()), cache)
	if err != nil {
		return nil, err
	}

	if notice != "" {
		flash.Add(c, notice)
	}

	return menu, nil
}
