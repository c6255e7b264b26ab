package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/metrics"
	repo "paintingstore/internal/repository"
	"paintingstore/internal/validator"

	"github.com/sirupsen/logrus"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	log    logrus.FieldLogger
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, log logrus.FieldLogger) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, log: log}
}

// 数量は呼び出し側で整数にしたもの。1未満はここで1にする
type OrderLineInput struct {
	PaintingID int64
	Quantity   int64
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	ShippingAddress *model.ShippingAddress
}

type OrderItemOutput struct {
	PaintingID int64  `json:"paintingId"`
	Title      string `json:"title"`
	Quantity   int64  `json:"quantity"`
	Price      int64  `json:"price"`
}

// 管理者向けに購入者を付ける
type OrderUserOutput struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type OrderOutput struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"userId"`
	User            *OrderUserOutput      `json:"user,omitempty"`
	Items           []OrderItemOutput     `json:"items"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	TotalPrice      int64                 `json:"totalPrice"`
	Status          string                `json:"status"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// 注文作成。
// 絵画の取得・検証・保存を1トランザクションで行うので、
// 価格のスナップショットはコミット済みのカタログと一致する
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "no order items")
	}
	if in.ShippingAddress == nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shippingAddress is required")
	}
	if err := validator.ValidateShippingAddress(*in.ShippingAddress); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var created model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//まとめて1回で取得
		paintings, err := r.Paintings().FindByIDs(ctx, distinctPaintingIDs(in.Items))
		if err != nil {
			return internalError(err)
		}
		byID := make(map[int64]model.Painting, len(paintings))
		for _, p := range paintings {
			byID[p.ID] = p
		}

		//リクエスト順で最初に見つからなかったIDを返す
		for _, it := range in.Items {
			if _, ok := byID[it.PaintingID]; !ok {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("painting with id %d not found", it.PaintingID))
			}
		}

		order, err := buildOrder(userID, in, byID)
		if err != nil {
			return err
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return internalError(err)
		}
		created = order
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	metrics.OrdersCreated.Inc()
	u.log.WithFields(logrus.Fields{
		"order_id": created.ID,
		"user_id":  userID,
		"total":    created.TotalPrice,
	}).Info("order created")

	return toOrderOutput(created), nil
}

// 同じIDが複数行あってもそのまま別行にする
// 合計が溢れる場合は400
func buildOrder(userID int64, in PlaceOrderInput, byID map[int64]model.Painting) (model.Order, error) {
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		p := byID[it.PaintingID]
		items = append(items, model.OrderItem{
			PaintingID:    p.ID,
			TitleSnapshot: p.Title,
			PriceSnapshot: p.Price,
			Quantity:      normalizeQuantity(it.Quantity),
		})
	}

	total, err := model.OrderTotal(items)
	if errors.Is(err, model.ErrTotalOverflow) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "order total is too large")
	}
	if err != nil {
		return model.Order{}, internalError(err)
	}

	addr := *in.ShippingAddress
	return model.Order{
		UserID: userID,
		Items:  items,
		ShippingAddress: model.ShippingAddress{
			Address:    strings.TrimSpace(addr.Address),
			City:       strings.TrimSpace(addr.City),
			PostalCode: strings.TrimSpace(addr.PostalCode),
			Country:    strings.TrimSpace(addr.Country),
		},
		TotalPrice: total,
		Status:     model.OrderStatusCreated,
	}, nil
}

func normalizeQuantity(q int64) int64 {
	if q < 1 {
		return 1
	}
	return q
}

func distinctPaintingIDs(items []OrderLineInput) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.PaintingID]; ok {
			continue
		}
		seen[it.PaintingID] = struct{}{}
		ids = append(ids, it.PaintingID)
	}
	return ids
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []OrderOutput{}, internalError(err)
	}
	return toOrderOutputs(orders), nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, internalError(err)
	}
	if o.UserID != userID {
		//他人の注文は「存在しない扱い」にする
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	out := toOrderOutput(o)
	out.User = nil
	return out, nil
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs
}

func toOrderOutput(o model.Order) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		outItems = append(outItems, OrderItemOutput{
			PaintingID: it.PaintingID,
			Title:      it.TitleSnapshot,
			Quantity:   it.Quantity,
			Price:      it.PriceSnapshot,
		})
	}

	out := OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           outItems,
		ShippingAddress: o.ShippingAddress,
		TotalPrice:      o.TotalPrice,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.User != nil {
		out.User = &OrderUserOutput{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email}
	}
	return out
}
