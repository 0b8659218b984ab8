package repository

import (
	"context"

	"littlelemon/internal/domain/model"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseとmiddlewareに注入します。
func NewUserGormRepository(db *gorm.DB) *userGormRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Omit("Groups").Create(user).Error; err != nil {
		return translate(err)
	}
	return nil
}

// IDでユーザーを1件取得（グループ込み）
func (r *userGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// usernameでユーザーを1件取得（グループ込み）
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// グループのメンバー一覧
func (r *userGormRepository) ListByGroup(ctx context.Context, groupName string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN auth_groups ON auth_groups.id = user_groups.group_id").
		Where("auth_groups.name = ?", groupName).
		Order("users.id asc").
		Find(&users).Error
	if err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// グループに追加（所属済みなら何もしない）
func (r *userGormRepository) AddToGroup(ctx context.Context, userID int64, groupName string) error {
	group, err := r.findGroup(ctx, groupName)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.User{ID: userID}).Association("Groups").Append(&group)
}

// グループから外す
func (r *userGormRepository) RemoveFromGroup(ctx context.Context, userID int64, groupName string) error {
	group, err := r.findGroup(ctx, groupName)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.User{ID: userID}).Association("Groups").Delete(&group)
}

func (r *userGormRepository) findGroup(ctx context.Context, name string) (model.Group, error) {
	var g model.Group
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&g).Error; err != nil {
		return model.Group{}, translate(err)
	}
	return g, nil
}
