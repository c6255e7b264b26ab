package repository

import (
	"context"
	"errors"

	"paintingstore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反
var ErrDuplicate = errors.New("duplicate")

// 絵画の永続化（保存・取得）だけを約束。
// 絞り込みはcatalogパッケージで行うので、一覧は全件を返す。
type PaintingRepository interface {
	//新しい順の全件
	ListAll(ctx context.Context) ([]model.Painting, error)
	FindByID(ctx context.Context, id int64) (model.Painting, error)
	//見つかったものだけ返す。順序は保証しない
	FindByIDs(ctx context.Context, ids []int64) ([]model.Painting, error)

	Create(ctx context.Context, p model.Painting) (model.Painting, error)
	Update(ctx context.Context, p model.Painting) (model.Painting, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
