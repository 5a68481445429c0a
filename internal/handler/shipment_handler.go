package handler

import (
	"net/http"

	"logimaster/internal/config"
	"logimaster/internal/middleware"
	"logimaster/internal/repository"
	"logimaster/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// AuthJWTがcontextに入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// /shipments と /tracking のAPI
type ShipmentHandler struct {
	uc *usecase.ShipmentUsecase
}

// DI
func NewShipmentHandler(uc *usecase.ShipmentUsecase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

type ShipmentCreateRequest struct {
	RecipientName    string          `json:"recipient_name"`
	RecipientAddress string          `json:"recipient_address"`
	Weight           decimal.Decimal `json:"weight"`
	Price            decimal.Decimal `json:"price"`
	TrackingCode     string          `json:"tracking_code"`
}

type TrackingRequest struct {
	TrackingID string `json:"tracking_id"`
}

type TrackingResponse struct {
	TrackingResult string `json:"tracking_result"`
}

func (h *ShipmentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/shipments")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("", h.create)
	g.GET("", h.list)

	t := e.Group("/tracking")
	t.Use(middleware.AuthJWT(cfg))
	t.Use(middleware.TokenVersionGuard(userRepo))

	t.POST("", h.track)
}

func (h *ShipmentHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ShipmentCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateShipmentInput{
		RecipientName:    req.RecipientName,
		RecipientAddress: req.RecipientAddress,
		Weight:           req.Weight,
		Price:            req.Price,
		TrackingCode:     req.TrackingCode,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ShipmentHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyShipments(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShipmentHandler) track(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req TrackingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	result, err := h.uc.Track(c.Request().Context(), userID, req.TrackingID)
	if err != nil {
		return writeError(c, err)
	}

	//見つからない場合も200で文言だけ変える（存在を教えない）
	return c.JSON(http.StatusOK, TrackingResponse{TrackingResult: result})
}
