// Package transfer serves the favorites export and import endpoints:
// a flat-text download of everything a user has favorited, and the
// matching upload form that recreates favorites from such a file.
package transfer

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/config"
	treectl "github.com/kinfolium/kinfolium/internal/db/controller/tree"
	"github.com/kinfolium/kinfolium/internal/favorites"
	"github.com/kinfolium/kinfolium/internal/web/flash"
	"github.com/kinfolium/kinfolium/internal/web/handler"
	"github.com/kinfolium/kinfolium/internal/web/navigation"
)

const (
	// Path is the path to the transfer page.
	Path = "/favorites/transfer"
)

// Service is the transfer handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *favorites.Engine
}

// Handler is the transfer handler.
var Handler = Service{}

// Init initializes the transfer handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.engine = favorites.NewEngine(db, favorites.NewDBRecordResolver(db), favorites.NewDBUserDirectory(db))

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Get("/export", s.Export)
		router.Post("/import", s.Import)
	})

	return nil
}

// Get renders the transfer page with its upload form and download link.
func (s *Service) Get(c *fiber.Ctx) error {
	user := handler.CurrentUser(c)
	if user.ID == 0 {
		return c.Redirect("/login")
	}

	trees, err := treectl.List(s.db)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Favorites transfer", "favorites", "transfer").
		AddBreadcrumb("Favorites transfer", Path, true)

	return c.Render("transfer", fiber.Map{
		"Title":       s.cfg.Title,
		"CurrentUser": user,
		"Nav":         nav,
		"Trees":       trees,
		"Flashes":     flash.Drain(c),
	}, handler.BaseLayout)
}

// Export streams the user's favorites as a flat-text download.
func (s *Service) Export(c *fiber.Ctx) error {
	user := handler.CurrentUser(c)
	if user.ID == 0 {
		return c.Redirect("/login")
	}

	out, err := s.engine.Export(user.ID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="favorites.txt"`)

	return c.SendString(out)
}

// Import recreates favorites from an uploaded or pasted export and
// flashes the per-line outcome counts.
func (s *Service) Import(c *fiber.Ctx) error {
	user := handler.CurrentUser(c)
	if user.ID == 0 {
		return c.Redirect("/login")
	}

	input, err := importInput(c)
	if err != nil {
		flash.Add(c, "Could not read the uploaded file.")
		return c.Redirect(Path)
	}

	report, err := s.engine.Import(user.ID, input)
	if errors.Is(err, favorites.ErrNoInput) {
		flash.Add(c, "Nothing to import: the input was empty.")
		return c.Redirect(Path)
	}
	if err != nil {
		return err
	}

	added, duplicates, errs := report.Counts()
	flash.Add(c,
		"Favorites added: "+strconv.Itoa(added),
		"Duplicates skipped: "+strconv.Itoa(duplicates),
		"Lines with errors: "+strconv.Itoa(errs),
	)
	flash.Add(c, report.Errors...)

	return c.Redirect(Path)
}

// importInput prefers an uploaded file over the pasted textarea.
func importInput(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return c.FormValue("data"), nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
