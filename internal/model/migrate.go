package model

import "gorm.io/gorm"

// AutoMigrate creates or updates every table. Order matters: referenced
// tables come before the tables holding the foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&ProductCategory{},
		&Product{},
		&Stock{},
		&ProductStock{},
		&StockHistory{},
	)
}
