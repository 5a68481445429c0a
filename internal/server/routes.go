package server

import (
	"logimaster/internal/config"
	"logimaster/internal/handler"
	"logimaster/internal/repository"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	UserAuth       *handler.AuthHandler
	AdminAuth      *handler.AuthHandler
	Shipments      *handler.ShipmentHandler
	Testimonials   *handler.TestimonialHandler
	AdminDashboard *handler.AdminDashboardHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	//利用者と管理者でセッションCookieの名前空間を分けて登録する
	h.UserAuth.RegisterRoutes(e, "/auth")
	h.AdminAuth.RegisterRoutes(e, "/admin/auth")

	h.Shipments.RegisterRoutes(e, cfg, userRepo)
	h.Testimonials.RegisterRoutes(e, cfg, userRepo)
	h.AdminDashboard.RegisterRoutes(e, cfg, userRepo)
}
