package repository

import (
	"context"
	"errors"

	"paintingstore/internal/domain/model"
	repo "paintingstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaintingGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaintingGormRepository(db *gorm.DB) *PaintingGormRepository {
	return &PaintingGormRepository{db: db}
}

// 新しい順で全件
func (r *PaintingGormRepository) ListAll(ctx context.Context) ([]model.Painting, error) {
	var paintings []model.Painting
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&paintings).Error
	if err != nil {
		return []model.Painting{}, err
	}
	return paintings, nil
}

// IDで絵画を取得
func (r *PaintingGormRepository) FindByID(ctx context.Context, id int64) (model.Painting, error) {
	var p model.Painting
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Painting{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Painting{}, err
	}
	return p, nil
}

// 注文作成時の一括取得。
// postgresではコミットまで価格が書き換わらないよう共有ロックを取る
func (r *PaintingGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Painting, error) {
	if len(ids) == 0 {
		return []model.Painting{}, nil
	}

	q := r.db.WithContext(ctx).Where("id IN ?", ids)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}

	var paintings []model.Painting
	if err := q.Find(&paintings).Error; err != nil {
		return []model.Painting{}, err
	}
	return paintings, nil
}

func (r *PaintingGormRepository) Create(ctx context.Context, p model.Painting) (model.Painting, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Painting{}, err
	}
	return p, nil
}

// 全項目を書き戻す。部分更新の判定はusecase側
func (r *PaintingGormRepository) Update(ctx context.Context, p model.Painting) (model.Painting, error) {
	res := r.db.WithContext(ctx).Model(&model.Painting{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":       p.Title,
		"artist":      p.Artist,
		"description": p.Description,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"category":    p.Category,
	})
	if res.Error != nil {
		return model.Painting{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Painting{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, p.ID)
}

// 物理削除。過去の注文明細はスナップショットなので影響しない
func (r *PaintingGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Painting{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PaintingGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Painting{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
