package repository

import (
	"context"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// カート明細を一覧取得（表示用にメニューも読む）
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// 行ロックを取りながら一覧取得（SQLiteではロック句は付かない）
func (r *CartGormRepository) LockByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

func (r *CartGormRepository) FindLineForUpdate(ctx context.Context, userID int64, menuItemID int64) (model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&line).Error
	if err != nil {
		return model.CartLine{}, translate(err)
	}
	return line, nil
}

func (r *CartGormRepository) CreateLine(ctx context.Context, line model.CartLine) (model.CartLine, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&line).Error; err != nil {
		return model.CartLine{}, translate(err)
	}
	return line, nil
}

// 数量と小計だけ更新（単価は追加時点のまま）
func (r *CartGormRepository) UpdateLine(ctx context.Context, line model.CartLine) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]interface{}{
			"quantity": line.Quantity,
			"price":    line.Price,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を1件削除
func (r *CartGormRepository) DeleteLine(ctx context.Context, userID int64, menuItemID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&model.CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ユーザーの明細を全削除
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartLine{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
