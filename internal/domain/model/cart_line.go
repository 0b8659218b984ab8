package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。1ユーザー×1メニューにつき1行。
// UnitPrice は最初に追加した時点の価格を保存し、以後更新しない。
type CartLine struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64           `gorm:"not null;uniqueIndex:idx_cart_user_menuitem" json:"user"`
	MenuItemID int64           `gorm:"not null;uniqueIndex:idx_cart_user_menuitem;index" json:"menuitem"`
	Quantity   int64           `gorm:"type:smallint;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"-"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// 新しい明細（単価は現在のメニュー価格）
func NewCartLine(userID int64, item MenuItem, qty int64) CartLine {
	return CartLine{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   qty,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(qty)),
	}
}

// 同じメニューの再追加は数量を足し、保存済みの単価で小計を計算し直す
func (l *CartLine) Merge(qty int64) {
	l.Quantity += qty
	l.Price = l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
