package db

import (
	"context"

	"paintingstore/internal/domain/model"

	"gorm.io/gorm"
)

// 初期カタログ
var SamplePaintings = []model.Painting{
	{
		Title:       "Starry Night",
		Artist:      "Vincent van Gogh",
		Description: "A swirling night sky over a quiet village.",
		Price:       2500,
		ImageURL:    "/images/starry-night.jpg",
		Category:    "Post-Impressionism",
	},
	{
		Title:       "Mona Lisa",
		Artist:      "Leonardo da Vinci",
		Description: "Portrait of a woman with an enigmatic smile.",
		Price:       5000,
		ImageURL:    "/images/mona-lisa.jpg",
		Category:    "Renaissance",
	},
	{
		Title:       "The Persistence of Memory",
		Artist:      "Salvador Dali",
		Description: "Melting clocks in a dreamlike landscape.",
		Price:       3000,
		ImageURL:    "/images/persistence-of-memory.jpg",
		Category:    "Surrealism",
	},
}

// 同じタイトルが無いものだけ入れる。入れた件数を返す
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range SamplePaintings {
			var n int64
			if err := tx.Model(&model.Painting{}).Where("title = ?", p.Title).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			row := p
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// 全データ削除。明細→注文の順に消す
func Destroy(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.OrderItem{},
			&model.Order{},
			&model.AuditLog{},
			&model.Painting{},
			&model.User{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
