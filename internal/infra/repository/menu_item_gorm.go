package repository

import (
	"context"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

// title順で全件
func (r *MenuItemGormRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := r.db.WithContext(ctx).Order("title asc").Order("id asc").Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

// IDでメニューを取得
func (r *MenuItemGormRepository) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	var m model.MenuItem
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return model.MenuItem{}, translate(err)
	}
	return m, nil
}

func (r *MenuItemGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return []model.MenuItem{}, nil
	}
	var items []model.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

// メニューの作成
func (r *MenuItemGormRepository) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return model.MenuItem{}, translate(err)
	}
	return m, nil
}

// メニューの更新
func (r *MenuItemGormRepository) Update(ctx context.Context, m model.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"title":       m.Title,
		"price":       m.Price,
		"featured":    m.Featured,
		"category_id": m.CategoryID,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カート明細と注文明細からの参照数
func (r *MenuItemGormRepository) CountReferences(ctx context.Context, id int64) (int64, error) {
	var inCarts int64
	if err := r.db.WithContext(ctx).Model(&model.CartLine{}).Where("menu_item_id = ?", id).Count(&inCarts).Error; err != nil {
		return 0, err
	}
	var inOrders int64
	if err := r.db.WithContext(ctx).Model(&model.OrderLine{}).Where("menu_item_id = ?", id).Count(&inOrders).Error; err != nil {
		return 0, err
	}
	return inCarts + inOrders, nil
}

// メニュー削除（参照されていれば外部キーで失敗する）
func (r *MenuItemGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
