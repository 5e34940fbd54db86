package favorites

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Engine binds the favorites core to its store and host collaborators.
// One Engine serves all requests; per-request state (the settings
// cache, partitions) lives in the values it returns.
type Engine struct {
	db       *gorm.DB
	records  RecordResolver
	users    UserDirectory
	validate *validator.Validate
}

// NewEngine creates an engine over the given store and collaborators.
func NewEngine(db *gorm.DB, records RecordResolver, users UserDirectory) *Engine {
	return &Engine{
		db:       db,
		records:  records,
		users:    users,
		validate: validator.New(),
	}
}

// DB exposes the underlying store handle for request-scoped caches.
func (e *Engine) DB() *gorm.DB {
	return e.db
}
