package daemon

import (
	"gorm.io/gorm"

	"github.com/kinfolium/kinfolium/internal/config"
	"github.com/kinfolium/kinfolium/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if user table is empty

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		// Create default admin user
		db.Create(
			&models.User{
				Username: "admin",
				Email:    "admin@localhost",
				Password: models.HashPassword("changeme"),
				RealName: "Administrator",
				Active:   true,
				IsAdmin:  true,
			},
		)
	}

	// Seed a demo tree with a handful of records so the menu has
	// something to point at on a fresh install.
	db.Model(&models.Tree{}).Count(&count)
	if count == 0 {
		tree := models.Tree{Name: "demo", Title: "Demo Family Tree"}
		db.Create(&tree)

		db.Create(&[]models.GedcomRecord{
			{TreeID: tree.ID, Xref: "I1", Type: models.TypeIndividual, Name: "John Doe"},
			{TreeID: tree.ID, Xref: "I2", Type: models.TypeIndividual, Name: "Jane Doe"},
			{TreeID: tree.ID, Xref: "F1", Type: models.TypeFamily, Name: "Doe family"},
			{TreeID: tree.ID, Xref: "S1", Type: models.TypeSource, Name: "Parish register"},
		})
	}
}
