package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"logimaster/internal/config"
	"logimaster/internal/middleware"
	"logimaster/internal/repository"
	"logimaster/internal/usecase"

	"github.com/labstack/echo/v4"
)

// スタッフ専用の管理ダッシュボードAPI
type AdminDashboardHandler struct {
	statsUC    *usecase.StatsUsecase
	shipmentUC *usecase.AdminShipmentUsecase
	clock      usecase.Clock
}

func NewAdminDashboardHandler(
	statsUC *usecase.StatsUsecase,
	shipmentUC *usecase.AdminShipmentUsecase,
	clock usecase.Clock,
) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		statsUC:    statsUC,
		shipmentUC: shipmentUC,
		clock:      clock,
	}
}

type BulkStatusUpdateRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

type BulkStatusUpdateResponse struct {
	Updated int64 `json:"updated"`
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.StaffGuard())

	admin.GET("/dashboard_stats", h.stats)
	admin.PUT("/shipments/status", h.bulkStatus)
	admin.GET("/shipments/:id/invoice", h.invoice)
}

func (h *AdminDashboardHandler) stats(c echo.Context) error {
	//as_ofを固定すると同じ結果が返る（検証用）。省略時は現在時刻
	asOf := h.clock.Now()
	if v := c.QueryParam("as_of"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid as_of"})
		}
		asOf = tm
	}

	out, err := h.statsUC.Snapshot(c.Request().Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminDashboardHandler) bulkStatus(c echo.Context) error {
	var req BulkStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	updated, err := h.shipmentUC.BulkSetStatus(c.Request().Context(), usecase.BulkSetStatusInput{
		IDs:    req.IDs,
		Status: req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, BulkStatusUpdateResponse{Updated: updated})
}

func (h *AdminDashboardHandler) invoice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	shipment, rows, err := h.shipmentUC.Invoice(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice_%s.csv"`, shipment.TrackingCode))
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	return w.WriteAll(rows)
}
