package repository

import (
	"context"

	"littlelemon/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文一覧の絞り込み
type OrderListFilter struct {
	UserID         *int64
	DeliveryCrewID *int64

	// true なら何も返さない
	None bool

	// date / total / status（先頭 - で降順）
	Ordering string

	// 注文者・配達担当のusername（部分一致）か status（完全一致）。
	// 空白区切りの語はすべて満たす必要がある。ロールの絞り込みの内側で効く
	Search string
}

// 注文の部分更新。nil の項目は変更しない
type OrderUpdate struct {
	UserID *int64

	// SetDeliveryCrew が true のときだけ DeliveryCrewID を反映（nil なら解除）
	SetDeliveryCrew bool
	DeliveryCrewID  *int64

	Status *model.OrderStatus
	Total  *decimal.Decimal
}

func (u OrderUpdate) IsEmpty() bool {
	return u.UserID == nil && !u.SetDeliveryCrew && u.Status == nil && u.Total == nil
}

type OrderRepository interface {
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	Update(ctx context.Context, orderID int64, u OrderUpdate) error
	// 明細ごと削除
	Delete(ctx context.Context, orderID int64) error
}
