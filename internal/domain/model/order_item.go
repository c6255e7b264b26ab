package model

import "time"

// 注文時点のタイトルと価格を保存する。以後カタログが変わっても変えない。
type OrderItem struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       int64     `gorm:"not null;index" json:"-"`
	PaintingID    int64     `gorm:"not null;index" json:"paintingId"`
	TitleSnapshot string    `gorm:"type:varchar(255);not null" json:"title"`
	PriceSnapshot int64     `gorm:"not null" json:"price"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"-"`
}
