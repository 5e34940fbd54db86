package daemon

import (
	"fmt"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/config"
	"github.com/kinfolium/kinfolium/internal/db/dsn"
	"github.com/kinfolium/kinfolium/internal/db/models"
	"github.com/kinfolium/kinfolium/internal/logger/adapter/gormlogger"
	"github.com/kinfolium/kinfolium/internal/web"
	"github.com/kinfolium/kinfolium/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
	addr       string
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(d.addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{Logger: gormlogger.New()})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Tree{},
		&models.GedcomRecord{},
		&models.Favorite{},
		&models.UserSetting{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	// Initialize fiber session store
	sessionStorage := sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})

	session.Init(sessionStorage)

	return &Daemon{
		webService: *web.New(cfg, db),
		addr:       fmt.Sprintf(":%d", cfg.Webserver.Port),
	}
}
