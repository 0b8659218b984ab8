package db

import (
	"context"
	"errors"

	"littlelemon/internal/config"
	"littlelemon/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed は権限グループと（設定があれば）superuserを作る。何度呼んでもよい。
// superuserを新規作成したら true を返す。
func Seed(ctx context.Context, gormDB *gorm.DB, cfg config.Config) (bool, error) {
	tx := gormDB.WithContext(ctx)

	for _, name := range []string{model.GroupManager, model.GroupDeliveryCrew} {
		if err := tx.Where(model.Group{Name: name}).FirstOrCreate(&model.Group{}).Error; err != nil {
			return false, err
		}
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	var existing model.User
	err := tx.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := model.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
