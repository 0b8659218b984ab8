package model

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string          `gorm:"type:varchar(255);not null;index" json:"title"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null;index" json:"price"`
	Featured   bool            `gorm:"not null;default:false;index" json:"featured"`
	CategoryID int64           `gorm:"not null;index" json:"category"`

	// 参照されているカテゴリは削除不可
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
