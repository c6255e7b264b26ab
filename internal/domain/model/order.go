package model

import (
	"errors"
	"math"
	"time"
)

// 合計がint64に収まらない
var ErrTotalOverflow = errors.New("order total overflows")

type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out for delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// 遷移可能な次ステータス。空スライスは終端。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:        {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// 既知のステータス文字列か判定して返す
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := orderTransitions[st]
	return st, ok
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := orderTransitions[s]
	return ok && len(next) == 0
}

// sからnextへ遷移できるか
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, st := range orderTransitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// 配送先（注文に埋め込む）
type ShippingAddress struct {
	Address    string `gorm:"type:varchar(255);not null" json:"address"`
	City       string `gorm:"type:varchar(255);not null" json:"city"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postalCode"`
	Country    string `gorm:"type:varchar(100);not null" json:"country"`
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"userId"`
	User            *User           `gorm:"foreignKey:UserID" json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	TotalPrice      int64           `gorm:"not null" json:"totalPrice"`
	Status          OrderStatus     `gorm:"type:varchar(30);not null;index" json:"status"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 明細スナップショットから合計を出す。
// 価格・数量は0以上が前提で、途中で溢れたらErrTotalOverflow
func OrderTotal(items []OrderItem) (int64, error) {
	var total int64
	for _, it := range items {
		if it.PriceSnapshot < 0 || it.Quantity < 0 {
			return 0, ErrTotalOverflow
		}
		if it.PriceSnapshot != 0 && it.Quantity > math.MaxInt64/it.PriceSnapshot {
			return 0, ErrTotalOverflow
		}
		line := it.PriceSnapshot * it.Quantity
		if total > math.MaxInt64-line {
			return 0, ErrTotalOverflow
		}
		total += line
	}
	return total, nil
}
