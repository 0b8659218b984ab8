package repository

import (
	"context"

	"littlelemon/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineGormRepository struct {
	db *gorm.DB
}

func NewOrderLineGormRepository(db *gorm.DB) *OrderLineGormRepository {
	return &OrderLineGormRepository{db: db}
}

func (r *OrderLineGormRepository) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&lines).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *OrderLineGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}

func (r *OrderLineGormRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderLine, error) {
	if len(orderIDs) == 0 {
		return []model.OrderLine{}, nil
	}
	var lines []model.OrderLine
	err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("order_id IN ?", orderIDs).
		Order("order_id asc").
		Order("id asc").
		Find(&lines).Error
	if err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}
