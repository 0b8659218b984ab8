package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文ステータス。名前付きの状態はなく、0が初期値（pending）。
// 遷移のルールは持たない。
type OrderStatus int16

const OrderStatusPending OrderStatus = 0

type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;index" json:"user"`
	DeliveryCrewID *int64          `gorm:"index" json:"delivery_crew"`
	Status         OrderStatus     `gorm:"type:smallint;not null;default:0;index" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(6,2);not null;default:0" json:"total"`
	Date           time.Time       `gorm:"type:date;not null;index" json:"date"`

	Lines        []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	DeliveryCrew *User       `gorm:"foreignKey:DeliveryCrewID;constraint:OnDelete:SET NULL" json:"-"`
}

// 担当の配達員か
func (o Order) IsAssignedTo(userID int64) bool {
	return o.DeliveryCrewID != nil && *o.DeliveryCrewID == userID
}
