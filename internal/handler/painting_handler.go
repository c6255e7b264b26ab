package handler

import (
	"net/http"

	"paintingstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /paintings のAPI
type PaintingHandler struct {
	uc *usecase.PaintingUsecase
}

// DI
func NewPaintingHandler(uc *usecase.PaintingUsecase) *PaintingHandler {
	return &PaintingHandler{uc: uc}
}

// 作成リクエスト。priceは未指定を区別したいのでポインタ
type paintingCreateRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

// 部分更新。bodyにある項目だけ変える
type paintingUpdateRequest struct {
	Title       *string `json:"title"`
	Artist      *string `json:"artist"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
}

// 公開ルートと、ルート直下の管理者用ルートを登録
// adminにはJWT検証とadmin判定を順に渡す
func (h *PaintingHandler) RegisterRoutes(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	e.GET("/paintings", h.list)
	e.GET("/paintings/count", h.count)
	e.GET("/paintings/categories", h.categories)
	e.GET("/paintings/:id", h.detail)

	e.POST("/paintings", h.create, admin...)
	e.PUT("/paintings/:id", h.update, admin...)
	e.DELETE("/paintings/:id", h.delete, admin...)
}

// /admin/paintings 配下
func (h *PaintingHandler) RegisterAdminRoutes(admin *echo.Group) {
	admin.GET("/paintings", h.list)
	admin.GET("/paintings/count", h.count)
	admin.PUT("/paintings/:id", h.update)
}

func (h *PaintingHandler) list(c echo.Context) error {
	out, err := h.uc.ListPaintings(c.Request().Context(), usecase.ListPaintingsInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaintingHandler) count(c echo.Context) error {
	n, err := h.uc.CountPaintings(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *PaintingHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaintingHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetPainting(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *PaintingHandler) create(c echo.Context) error {
	var req paintingCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.AdminCreatePainting(c.Request().Context(), adminID, usecase.AdminCreatePaintingInput{
		Title:       req.Title,
		Artist:      req.Artist,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *PaintingHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req paintingUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	p, err := h.uc.AdminUpdatePainting(c.Request().Context(), adminID, id, usecase.AdminUpdatePaintingInput{
		Title:       req.Title,
		Artist:      req.Artist,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *PaintingHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeletePainting(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
