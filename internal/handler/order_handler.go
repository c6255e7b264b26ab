package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc      *usecase.OrderUsecase
	adminUC *usecase.AdminOrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, adminUC *usecase.AdminOrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, adminUC: adminUC}
}

// int64に収まらない数量
var errQuantityOutOfRange = errors.New("quantity out of range")

// 数量はクライアントによって数値・文字列どちらも来る。
// 数値は小数切り捨て、数値文字列はパース、それ以外は0（usecaseで1になる）。
// int64に収まらない値はエラー
type flexQuantity int64

func (q *flexQuantity) UnmarshalJSON(b []byte) error {
	*q = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	switch b[0] {
	case '"':
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s = string(b)
	default:
		return nil
	}

	// 整数ならそのまま（float64を経由すると大きい値で精度が落ちる）
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		*q = flexQuantity(n)
		return nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return errQuantityOutOfRange
	}

	f, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return errQuantityOutOfRange
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f = math.Trunc(f)
	// 2^63はfloat64で表せるのでその手前まで
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return errQuantityOutOfRange
	}
	*q = flexQuantity(f)
	return nil
}

type orderItemRequest struct {
	PaintingID int64        `json:"paintingId"`
	Quantity   flexQuantity `json:"quantity"`
}

type OrderCreateRequest struct {
	Items           []orderItemRequest     `json:"items"`
	ShippingAddress *model.ShippingAddress `json:"shippingAddress"`
}

// /orders 配下。authは全ルート、adminは管理者用の一覧・詳細・ステータス更新
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, admin echo.MiddlewareFunc) {
	g := e.Group("/orders", auth)

	g.POST("", h.create)
	g.GET("/me", h.listMine)
	g.GET("/me/:id", h.detailMine)

	g.GET("", h.adminList, admin)
	g.GET("/count", h.adminCount, admin)
	g.GET("/:id", h.adminDetail, admin)
	g.PUT("/:id/status", h.adminUpdateStatus, admin)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		if errors.Is(err, errQuantityOutOfRange) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errQuantityOutOfRange.Error()})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 0以下や未指定のIDもカタログ照合に回す（見つからなければ404）
	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderLineInput{
			PaintingID: it.PaintingID,
			Quantity:   int64(it.Quantity),
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detailMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /orders?status= は一覧を配列で返す（ページングは/admin/orders）
func (h *OrderHandler) adminList(c echo.Context) error {
	f, msg := parseAdminOrderFilter(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}

	out, err := h.adminUC.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out.Items)
}

func (h *OrderHandler) adminCount(c echo.Context) error {
	n, err := h.adminUC.Count(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *OrderHandler) adminDetail(c echo.Context) error {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.adminUC.Get(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) adminUpdateStatus(c echo.Context) error {
	return updateOrderStatus(c, h.adminUC)
}
