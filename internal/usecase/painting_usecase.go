package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"paintingstore/internal/catalog"
	"paintingstore/internal/domain/model"
	repo "paintingstore/internal/repository"

	"github.com/sirupsen/logrus"
)

type PaintingUsecase struct {
	paintingRepo repo.PaintingRepository
	auditRepo    repo.AuditLogRepository
	cache        CatalogCache
	log          logrus.FieldLogger
}

// DI
func NewPaintingUsecase(
	paintingRepo repo.PaintingRepository,
	auditRepo repo.AuditLogRepository,
	cache CatalogCache,
	log logrus.FieldLogger,
) *PaintingUsecase {
	return &PaintingUsecase{
		paintingRepo: paintingRepo,
		auditRepo:    auditRepo,
		cache:        cache,
		log:          log,
	}
}

// GET /paintingsの入力DTO
type ListPaintingsInput struct {
	Search   string
	Category string
}

// キャッシュ→DBの順で全件を取る
func (u *PaintingUsecase) loadAll(ctx context.Context) ([]model.Painting, error) {
	cached, ok, err := u.cache.GetPaintings(ctx)
	if err != nil {
		u.log.WithError(err).Warn("catalog cache read failed")
	}
	if ok {
		return cached, nil
	}

	all, err := u.paintingRepo.ListAll(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	if err := u.cache.SetPaintings(ctx, all); err != nil {
		u.log.WithError(err).Warn("catalog cache write failed")
	}
	return all, nil
}

func (u *PaintingUsecase) invalidate(ctx context.Context) {
	if err := u.cache.Invalidate(ctx); err != nil {
		u.log.WithError(err).Warn("catalog cache invalidate failed")
	}
}

func (u *PaintingUsecase) ListPaintings(ctx context.Context, in ListPaintingsInput) ([]model.Painting, error) {
	if len(in.Search) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	all, err := u.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(all, in.Search, in.Category), nil
}

// "All"が先頭
func (u *PaintingUsecase) Categories(ctx context.Context) ([]string, error) {
	all, err := u.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(all), nil
}

func (u *PaintingUsecase) CountPaintings(ctx context.Context) (int64, error) {
	n, err := u.paintingRepo.Count(ctx)
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}

func (u *PaintingUsecase) GetPainting(ctx context.Context, paintingID int64) (model.Painting, error) {
	if paintingID <= 0 {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "invalid painting id")
	}

	p, err := u.paintingRepo.FindByID(ctx, paintingID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Painting{}, NewHTTPError(http.StatusNotFound, "painting not found")
	}
	if err != nil {
		return model.Painting{}, internalError(err)
	}
	return p, nil
}

// priceはnilなら未指定
type AdminCreatePaintingInput struct {
	Title       string
	Artist      string
	Description string
	Price       *int64
	ImageURL    string
	Category    string
}

func (u *PaintingUsecase) AdminCreatePainting(ctx context.Context, adminUserID int64, in AdminCreatePaintingInput) (model.Painting, error) {
	if adminUserID <= 0 {
		return model.Painting{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price == nil {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "price required")
	}
	if *in.Price < 0 {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if *in.Price > model.MaxPrice {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("price must be <= %d", model.MaxPrice))
	}

	p := model.Painting{
		Title:       strings.TrimSpace(in.Title),
		Artist:      orDefault(in.Artist, model.DefaultArtist),
		Description: in.Description,
		Price:       *in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Category:    orDefault(in.Category, model.DefaultCategory),
	}
	created, err := u.paintingRepo.Create(ctx, p)
	if err != nil {
		return model.Painting{}, internalError(err)
	}

	u.audit(ctx, adminUserID, model.AuditActionCreatePainting, created.ID, nil, &created)
	u.invalidate(ctx)
	u.log.WithFields(logrus.Fields{"painting_id": created.ID, "admin_id": adminUserID}).Info("painting created")
	return created, nil
}

// 部分更新。nilの項目は変更しない
type AdminUpdatePaintingInput struct {
	Title       *string
	Artist      *string
	Description *string
	Price       *int64
	ImageURL    *string
	Category    *string
}

func (u *PaintingUsecase) AdminUpdatePainting(ctx context.Context, adminUserID int64, paintingID int64, in AdminUpdatePaintingInput) (model.Painting, error) {
	if adminUserID <= 0 {
		return model.Painting{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paintingID <= 0 {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "invalid painting id")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Price != nil && *in.Price > model.MaxPrice {
		return model.Painting{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("price must be <= %d", model.MaxPrice))
	}

	//変更前（before）
	before, err := u.paintingRepo.FindByID(ctx, paintingID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Painting{}, NewHTTPError(http.StatusNotFound, "painting not found")
	}
	if err != nil {
		return model.Painting{}, internalError(err)
	}

	next := before
	if in.Title != nil {
		next.Title = strings.TrimSpace(*in.Title)
	}
	if in.Artist != nil {
		next.Artist = orDefault(*in.Artist, model.DefaultArtist)
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Price != nil {
		next.Price = *in.Price
	}
	if in.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Category != nil {
		next.Category = orDefault(*in.Category, model.DefaultCategory)
	}

	updated, err := u.paintingRepo.Update(ctx, next)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Painting{}, NewHTTPError(http.StatusNotFound, "painting not found")
	}
	if err != nil {
		return model.Painting{}, internalError(err)
	}

	u.audit(ctx, adminUserID, model.AuditActionUpdatePainting, paintingID, &before, &updated)
	u.invalidate(ctx)
	u.log.WithFields(logrus.Fields{"painting_id": paintingID, "admin_id": adminUserID}).Info("painting updated")
	return updated, nil
}

// 物理削除。注文明細はスナップショットなので残る
func (u *PaintingUsecase) AdminDeletePainting(ctx context.Context, adminUserID int64, paintingID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paintingID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid painting id")
	}

	before, err := u.paintingRepo.FindByID(ctx, paintingID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "painting not found")
	}
	if err != nil {
		return internalError(err)
	}

	err = u.paintingRepo.Delete(ctx, paintingID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "painting not found")
	}
	if err != nil {
		return internalError(err)
	}

	u.audit(ctx, adminUserID, model.AuditActionDeletePainting, paintingID, &before, nil)
	u.invalidate(ctx)
	u.log.WithFields(logrus.Fields{"painting_id": paintingID, "admin_id": adminUserID}).Info("painting deleted")
	return nil
}

// 監査ログを作成
// 本体の変更は済んでいるので、失敗はログだけ残す
func (u *PaintingUsecase) audit(ctx context.Context, adminUserID int64, action model.AuditAction, paintingID int64, before, after *model.Painting) {
	err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       action,
		ResourceType: model.AuditResourcePainting,
		ResourceID:   paintingID,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		u.log.WithError(err).WithField("painting_id", paintingID).Error("audit log write failed")
	}
}

func toJSON(p *model.Painting) string {
	if p == nil {
		return ""
	}
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(b)
}

func orDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
