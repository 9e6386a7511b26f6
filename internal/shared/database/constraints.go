package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the automigration does not cover.
func MigrateConstraints(db *gorm.DB) error {
	// Quotes are routinely scanned by sync status (drift detector, agent views)
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_quotes_sync_status
		ON quotes (sync_status);
	`).Error
	if err != nil {
		return err
	}

	// The drift detector looks up quotes by linked package ID inside the JSONB selection
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_quotes_selection_package_id
		ON quotes ((selection->>'packageId'));
	`).Error
	if err != nil {
		return err
	}

	// Listings exclude deleted packages
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_super_packages_status
		ON super_packages (status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
