package database

import (
	"superpack/internal/catalog"
	"superpack/internal/packages"
	"superpack/internal/quotes"
	"superpack/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&packages.Package{},
		&catalog.Event{},
		&quotes.Quote{},
	)
}
