package model

import "time"

const (
	// 作者未入力時
	DefaultArtist = "Unknown"
	// カテゴリ未入力時
	DefaultCategory = "Uncategorized"

	// 価格の上限（最小通貨単位で1兆）
	MaxPrice int64 = 1_000_000_000_000
)

// 絵画（カタログの1件）
type Painting struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Artist      string    `gorm:"type:varchar(255);not null" json:"artist"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	ImageURL    string    `gorm:"type:varchar(1024)" json:"imageUrl"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
