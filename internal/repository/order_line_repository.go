package repository

import (
	"context"

	"littlelemon/internal/domain/model"
)

// MenuItem は表示用に読み込んで返す
type OrderLineRepository interface {
	CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)
	ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderLine, error)
}
