package handler

import (
	"net/http"

	"logimaster/internal/config"
	"logimaster/internal/middleware"
	"logimaster/internal/repository"
	"logimaster/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /testimonials の公開API
type TestimonialHandler struct {
	uc *usecase.TestimonialUsecase
}

func NewTestimonialHandler(uc *usecase.TestimonialUsecase) *TestimonialHandler {
	return &TestimonialHandler{uc: uc}
}

type TestimonialCreateRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

func (h *TestimonialHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	//一覧は誰でも見られる
	e.GET("/testimonials", h.list)

	//投稿はログイン必須
	g := e.Group("/testimonials")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.POST("", h.create)
}

func (h *TestimonialHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TestimonialHandler) create(c echo.Context) error {
	var req TestimonialCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateTestimonialInput{
		Name:    req.Name,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
