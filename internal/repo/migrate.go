package repo

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates every table, then applies per-driver fixes
// AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return pinEmailCollation(db)
}

// pinEmailCollation makes email comparison exact on MySQL, whose default
// collation is case-insensitive and would let "A@x.io" and "a@x.io" collide
// on the unique index and match each other on login. Postgres and sqlite
// already compare text byte-wise.
func pinEmailCollation(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	err := db.Exec("ALTER TABLE users MODIFY email VARCHAR(255) NOT NULL COLLATE utf8mb4_bin").Error
	if err != nil {
		return fmt.Errorf("pin email collation: %w", err)
	}
	return nil
}
