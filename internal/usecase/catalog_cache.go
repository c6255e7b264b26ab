package usecase

import (
	"context"

	"paintingstore/internal/domain/model"
)

// カタログ全件のキャッシュ。失敗してもリクエストは失敗させない
type CatalogCache interface {
	// 2つ目の戻り値はヒットしたか
	GetPaintings(ctx context.Context) ([]model.Painting, bool, error)
	SetPaintings(ctx context.Context, paintings []model.Painting) error
	Invalidate(ctx context.Context) error
}
