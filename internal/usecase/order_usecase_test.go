package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"paintingstore/internal/domain/model"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var validAddress = &model.ShippingAddress{
	Address: "1 Main St", City: "Paris", PostalCode: "75001", Country: "FR",
}

func newOrderUsecaseWithMocks() (*OrderUsecase, *TxManagerMock, *OrderRepoMock, *PaintingRepoMock, *test.Hook) {
	orders := new(OrderRepoMock)
	paintings := new(PaintingRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, paintings: paintings, auditLogs: new(AuditRepoMock)}}
	tx.On("WithinTx", mock.Anything).Return()
	log, hook := test.NewNullLogger()
	return NewOrderUsecase(tx, orders, log), tx, orders, paintings, hook
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := AsHTTPError(err)
	require.True(t, ok, "want HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func TestPlaceOrder_TotalFromSnapshots(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, paintings, hook := newOrderUsecaseWithMocks()

	paintings.On("FindByIDs", ctx, []int64{1, 2}).Return([]model.Painting{
		{ID: 2, Title: "B", Price: 50},
		{ID: 1, Title: "A", Price: 100},
	}, nil)
	orders.On("Create", ctx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Order).ID = 10 }).
		Return(nil)

	out, err := uc.PlaceOrder(ctx, 5, PlaceOrderInput{
		Items:           []OrderLineInput{{PaintingID: 1, Quantity: 2}, {PaintingID: 2, Quantity: 1}},
		ShippingAddress: validAddress,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 10, out.ID)
	assert.EqualValues(t, 250, out.TotalPrice)
	assert.Equal(t, "created", out.Status)
	require.Len(t, out.Items, 2)
	assert.Equal(t, OrderItemOutput{PaintingID: 1, Title: "A", Quantity: 2, Price: 100}, out.Items[0])
	assert.Equal(t, OrderItemOutput{PaintingID: 2, Title: "B", Quantity: 1, Price: 50}, out.Items[1])
	assert.Equal(t, "order created", hook.LastEntry().Message)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	uc, tx, _, _, _ := newOrderUsecaseWithMocks()

	_, err := uc.PlaceOrder(context.Background(), 5, PlaceOrderInput{ShippingAddress: validAddress})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_AddressRequired(t *testing.T) {
	uc, tx, _, _, _ := newOrderUsecaseWithMocks()
	items := []OrderLineInput{{PaintingID: 1, Quantity: 1}}

	_, err := uc.PlaceOrder(context.Background(), 5, PlaceOrderInput{Items: items})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	noCity := *validAddress
	noCity.City = ""
	_, err = uc.PlaceOrder(context.Background(), 5, PlaceOrderInput{Items: items, ShippingAddress: &noCity})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "city")

	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPlaceOrder_UnknownPaintingWritesNothing(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, paintings, _ := newOrderUsecaseWithMocks()

	paintings.On("FindByIDs", ctx, []int64{1, 99, 98}).Return([]model.Painting{{ID: 1, Title: "A", Price: 100}}, nil)

	_, err := uc.PlaceOrder(ctx, 5, PlaceOrderInput{
		Items:           []OrderLineInput{{PaintingID: 1, Quantity: 1}, {PaintingID: 99, Quantity: 1}, {PaintingID: 98, Quantity: 1}},
		ShippingAddress: validAddress,
	})
	assertHTTPStatus(t, err, http.StatusNotFound)
	// リクエスト順で最初の未解決ID
	assert.Contains(t, err.Error(), "painting with id 99 not found")
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_QuantityNormalizedAndNoMerge(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, paintings, _ := newOrderUsecaseWithMocks()

	paintings.On("FindByIDs", ctx, []int64{1}).Return([]model.Painting{{ID: 1, Title: "A", Price: 100}}, nil)

	var saved *model.Order
	orders.On("Create", ctx, mock.AnythingOfType("*model.Order")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Order) }).
		Return(nil)

	out, err := uc.PlaceOrder(ctx, 5, PlaceOrderInput{
		Items:           []OrderLineInput{{PaintingID: 1, Quantity: 0}, {PaintingID: 1, Quantity: -4}},
		ShippingAddress: validAddress,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Len(t, saved.Items, 2)
	for _, it := range saved.Items {
		assert.EqualValues(t, 1, it.Quantity)
	}
	assert.EqualValues(t, 200, out.TotalPrice)
}

// 価格×数量がint64を超える注文は保存しない
func TestPlaceOrder_TotalOverflowIsBadRequest(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, paintings, _ := newOrderUsecaseWithMocks()

	paintings.On("FindByIDs", ctx, []int64{1}).Return([]model.Painting{{ID: 1, Title: "A", Price: math.MaxInt64 / 2}}, nil)

	_, err := uc.PlaceOrder(ctx, 5, PlaceOrderInput{
		Items:           []OrderLineInput{{PaintingID: 1, Quantity: 3}},
		ShippingAddress: validAddress,
	})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "order total is too large")
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_LargeQuantityKept(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, paintings, _ := newOrderUsecaseWithMocks()

	paintings.On("FindByIDs", ctx, []int64{1}).Return([]model.Painting{{ID: 1, Title: "A", Price: 10}}, nil)
	orders.On("Create", ctx, mock.AnythingOfType("*model.Order")).Return(nil)

	out, err := uc.PlaceOrder(ctx, 5, PlaceOrderInput{
		Items:           []OrderLineInput{{PaintingID: 1, Quantity: 3_000_000_000}},
		ShippingAddress: validAddress,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3_000_000_000, out.Items[0].Quantity)
	assert.EqualValues(t, 30_000_000_000, out.TotalPrice)
}

func TestPlaceOrder_RepoErrorIs500(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, paintings, _ := newOrderUsecaseWithMocks()

	paintings.On("FindByIDs", ctx, []int64{1}).Return([]model.Painting{{ID: 1, Title: "A", Price: 100}}, nil)
	boom := errors.New("boom")
	orders.On("Create", ctx, mock.Anything).Return(boom)

	_, err := uc.PlaceOrder(ctx, 5, PlaceOrderInput{
		Items:           []OrderLineInput{{PaintingID: 1, Quantity: 1}},
		ShippingAddress: validAddress,
	})
	assertHTTPStatus(t, err, http.StatusInternalServerError)
	assert.ErrorIs(t, err, boom)
}

func TestGetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, _, _ := newOrderUsecaseWithMocks()

	orders.On("FindByID", ctx, int64(3)).Return(model.Order{ID: 3, UserID: 99}, nil)

	_, err := uc.GetMyOrderDetail(ctx, 5, 3)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestListMyOrders(t *testing.T) {
	ctx := context.Background()
	uc, _, orders, _, _ := newOrderUsecaseWithMocks()

	orders.On("ListByUserID", ctx, int64(5)).Return([]model.Order{
		{ID: 2, UserID: 5, Status: model.OrderStatusPaid, Items: []model.OrderItem{{PaintingID: 1, TitleSnapshot: "A", PriceSnapshot: 100, Quantity: 1}}},
	}, nil)

	outs, err := uc.ListMyOrders(ctx, 5)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "paid", outs[0].Status)
	assert.Equal(t, "A", outs[0].Items[0].Title)

	_, err = uc.ListMyOrders(ctx, 0)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}
