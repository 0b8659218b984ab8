package db

import (
	"littlelemon/internal/domain/model"

	"gorm.io/gorm"
)

// Migrate はスキーマを作成・更新する。
// 参照される側から順に作る。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.Group{},
		&model.User{},
		&model.Category{},
		&model.MenuItem{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderLine{},
	)
}
