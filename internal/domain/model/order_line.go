package model

import "github.com/shopspring/decimal"

// 注文明細。作成後は変更しない（注文の削除でのみ消える）。
type OrderLine struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;uniqueIndex:idx_order_menuitem" json:"order"`
	MenuItemID int64           `gorm:"not null;uniqueIndex:idx_order_menuitem;index" json:"menuitem"`
	Quantity   int64           `gorm:"type:smallint;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`

	Order    *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// カート明細から注文明細を作る。
// 単価はカートの値、Price は現在のメニュー価格 × 数量。
func NewOrderLine(line CartLine, current MenuItem) OrderLine {
	return OrderLine{
		MenuItemID: line.MenuItemID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		Price:      current.Price.Mul(decimal.NewFromInt(line.Quantity)),
	}
}
