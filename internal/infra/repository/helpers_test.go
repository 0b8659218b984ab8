package repository_test

import (
	"context"
	"testing"

	"littlelemon/internal/config"
	"littlelemon/internal/domain/model"
	"littlelemon/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// テストごとに独立したインメモリSQLite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.OpenSQLite("file:"+uuid.NewString()+"?mode=memory&cache=shared", nil)
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// 共有キャッシュのロック競合を避けるため接続は1本
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	_, err = db.Seed(context.Background(), gormDB, config.Config{})
	require.NoError(t, err)
	return gormDB
}

func mustCreateUser(t *testing.T, gormDB *gorm.DB, username string, groups ...string) model.User {
	t.Helper()

	u := model.User{Username: username, PasswordHash: "x", IsActive: true}
	require.NoError(t, gormDB.Omit("Groups").Create(&u).Error)

	for _, name := range groups {
		var g model.Group
		require.NoError(t, gormDB.Where("name = ?", name).First(&g).Error)
		require.NoError(t, gormDB.Model(&u).Association("Groups").Append(&g))
	}
	return u
}

func mustCreateMenuItem(t *testing.T, gormDB *gorm.DB, title string, price string) model.MenuItem {
	t.Helper()

	var c model.Category
	require.NoError(t, gormDB.Where(model.Category{Slug: "mains", Title: "Mains"}).FirstOrCreate(&c).Error)

	m := model.MenuItem{Title: title, Price: decimal.RequireFromString(price), CategoryID: c.ID}
	require.NoError(t, gormDB.Omit("Category").Create(&m).Error)
	return m
}
