package handler

import (
	"net/http"
	"strconv"
	"time"

	"paintingstore/internal/domain/model"
	"paintingstore/internal/repository"
	"paintingstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/users と /admin/audit-logs
type AdminUserHandler struct {
	uc    *usecase.AdminUserUsecase
	audit *usecase.AuditLogUsecase
}

func NewAdminUserHandler(uc *usecase.AdminUserUsecase, audit *usecase.AuditLogUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, audit: audit}
}

func (h *AdminUserHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/users", h.list)
	admin.GET("/users/count", h.count)
	admin.GET("/users/:id", h.detail)
	admin.GET("/users/:id/orders", h.orders)
	admin.GET("/audit-logs", h.auditLogs)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *AdminUserHandler) detail(c echo.Context) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid user_id"))
	}

	out, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) orders(c echo.Context) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid user_id"))
	}

	out, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?actorUserId=&action=&resourceType=&resourceId=&from=&to=&limit=&offset=
func (h *AdminUserHandler) auditLogs(c echo.Context) error {
	var f repository.AuditLogFilter

	parseInt := func(key string, dst **int64) bool {
		v := c.QueryParam(key)
		if v == "" {
			return true
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false
		}
		*dst = &n
		return true
	}
	if !parseInt("actorUserId", &f.ActorUserID) {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid actorUserId"))
	}
	if !parseInt("resourceId", &f.ResourceID) {
		return c.JSON(http.StatusBadRequest, errorJSON("invalid resourceId"))
	}

	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resourceType"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}

	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid from"))
		}
		f.CreatedFrom = &tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid to"))
		}
		f.CreatedTo = &tm
	}

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid limit"))
		}
		f.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid offset"))
		}
		f.Offset = o
	}

	out, err := h.audit.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func errorJSON(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}
