// Package trees serves the tree overview page, the landing page after
// login.
package trees

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/config"
	treectl "github.com/kinfolium/kinfolium/internal/db/controller/tree"
	"github.com/kinfolium/kinfolium/internal/web/flash"
	"github.com/kinfolium/kinfolium/internal/web/handler"
	"github.com/kinfolium/kinfolium/internal/web/navigation"
)

const (
	// Path is the path to the tree overview page.
	Path = "/trees"
)

// Service is the trees handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the trees handler.
var Handler = Service{}

// Init initializes the trees handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
	})

	return nil
}

// Get renders the tree overview.
func (s *Service) Get(c *fiber.Ctx) error {
	trees, err := treectl.List(s.db)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Family trees", "trees", "overview").
		AddBreadcrumb("Trees", Path, true)

	return c.Render("trees", fiber.Map{
		"Title":       s.cfg.Title,
		"CurrentUser": handler.CurrentUser(c),
		"Nav":         nav,
		"Trees":       trees,
		"Flashes":     flash.Drain(c),
	}, handler.BaseLayout)
}
