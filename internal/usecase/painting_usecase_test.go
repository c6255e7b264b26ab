package usecase

import (
	"context"
	"net/http"
	"testing"

	"paintingstore/internal/domain/model"
	repo "paintingstore/internal/repository"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaintingUsecaseWithMocks() (*PaintingUsecase, *PaintingRepoMock, *AuditRepoMock, *fakeCache) {
	paintings := new(PaintingRepoMock)
	audit := new(AuditRepoMock)
	cache := &fakeCache{}
	log, _ := test.NewNullLogger()
	return NewPaintingUsecase(paintings, audit, cache, log), paintings, audit, cache
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestListPaintings_FiltersAndCaches(t *testing.T) {
	ctx := context.Background()
	uc, paintings, _, cache := newPaintingUsecaseWithMocks()

	paintings.On("ListAll", ctx).Return([]model.Painting{
		{ID: 1, Title: "Starry Night", Category: "Post-Impressionism"},
		{ID: 2, Title: "Mona Lisa", Category: "Renaissance"},
	}, nil).Once()

	got, err := uc.ListPaintings(ctx, ListPaintingsInput{Search: "starry"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Starry Night", got[0].Title)
	assert.True(t, cache.hit)

	// 2回目はキャッシュから
	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Post-Impressionism", "Renaissance"}, cats)
	paintings.AssertNumberOfCalls(t, "ListAll", 1)
}

func TestAdminCreatePainting_Defaults(t *testing.T) {
	ctx := context.Background()
	uc, paintings, audit, cache := newPaintingUsecaseWithMocks()
	cache.hit = true

	paintings.On("Create", ctx, model.Painting{
		Title: "Untitled", Artist: model.DefaultArtist, Price: 0, Category: model.DefaultCategory,
	}).Return(model.Painting{ID: 4, Title: "Untitled", Artist: model.DefaultArtist, Category: model.DefaultCategory}, nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreatePainting && l.ResourceID == 4 && l.BeforeJSON == "" && l.AfterJSON != ""
	})).Return(nil)

	p, err := uc.AdminCreatePainting(ctx, 1, AdminCreatePaintingInput{Title: " Untitled ", Price: int64Ptr(0)})
	require.NoError(t, err)
	assert.EqualValues(t, 4, p.ID)
	assert.Equal(t, 1, cache.invalidated)
	audit.AssertExpectations(t)
}

func TestAdminCreatePainting_Validation(t *testing.T) {
	uc, paintings, _, _ := newPaintingUsecaseWithMocks()
	ctx := context.Background()

	_, err := uc.AdminCreatePainting(ctx, 1, AdminCreatePaintingInput{Title: "", Price: int64Ptr(1)})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminCreatePainting(ctx, 1, AdminCreatePaintingInput{Title: "x"})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminCreatePainting(ctx, 1, AdminCreatePaintingInput{Title: "x", Price: int64Ptr(-1)})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminCreatePainting(ctx, 1, AdminCreatePaintingInput{Title: "x", Price: int64Ptr(model.MaxPrice + 1)})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	paintings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminUpdatePainting_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	uc, paintings, audit, cache := newPaintingUsecaseWithMocks()

	before := model.Painting{ID: 1, Title: "Starry Night", Artist: "Vincent van Gogh", Price: 2500, Category: "Post-Impressionism"}
	after := before
	after.Price = 2700

	paintings.On("FindByID", ctx, int64(1)).Return(before, nil)
	paintings.On("Update", ctx, after).Return(after, nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdatePainting && l.BeforeJSON != "" && l.AfterJSON != ""
	})).Return(nil)

	got, err := uc.AdminUpdatePainting(ctx, 7, 1, AdminUpdatePaintingInput{Price: int64Ptr(2700)})
	require.NoError(t, err)
	assert.Equal(t, "Starry Night", got.Title)
	assert.EqualValues(t, 2700, got.Price)
	assert.Equal(t, 1, cache.invalidated)
}

func TestAdminUpdatePainting_Errors(t *testing.T) {
	ctx := context.Background()
	uc, paintings, _, _ := newPaintingUsecaseWithMocks()

	_, err := uc.AdminUpdatePainting(ctx, 7, 1, AdminUpdatePaintingInput{Title: strPtr("  ")})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminUpdatePainting(ctx, 7, 1, AdminUpdatePaintingInput{Price: int64Ptr(-5)})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.AdminUpdatePainting(ctx, 7, 1, AdminUpdatePaintingInput{Price: int64Ptr(model.MaxPrice + 1)})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	paintings.On("FindByID", ctx, int64(2)).Return(model.Painting{}, repo.ErrNotFound)
	_, err = uc.AdminUpdatePainting(ctx, 7, 2, AdminUpdatePaintingInput{Price: int64Ptr(5)})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestAdminDeletePainting(t *testing.T) {
	ctx := context.Background()
	uc, paintings, audit, cache := newPaintingUsecaseWithMocks()

	paintings.On("FindByID", ctx, int64(1)).Return(model.Painting{ID: 1, Title: "A"}, nil)
	paintings.On("Delete", ctx, int64(1)).Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeletePainting && l.AfterJSON == ""
	})).Return(nil)

	require.NoError(t, uc.AdminDeletePainting(ctx, 7, 1))
	assert.Equal(t, 1, cache.invalidated)

	paintings.On("FindByID", ctx, int64(2)).Return(model.Painting{}, repo.ErrNotFound)
	assertHTTPStatus(t, uc.AdminDeletePainting(ctx, 7, 2), http.StatusNotFound)
}

func TestGetPainting_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, paintings, _, _ := newPaintingUsecaseWithMocks()
	paintings.On("FindByID", ctx, int64(9)).Return(model.Painting{}, repo.ErrNotFound)

	_, err := uc.GetPainting(ctx, 9)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
