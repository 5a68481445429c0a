package main

import (
	"time"

	"logimaster/internal/config"
	"logimaster/internal/domain/model"
	"logimaster/internal/handler"
	"logimaster/internal/infra/db"
	infraRepo "logimaster/internal/infra/repository"
	"logimaster/internal/server"
	"logimaster/internal/tracking"
	"logimaster/internal/usecase"
	auth "logimaster/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, isStaff bool, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   userID,
		"staff": isStaff,
		"tv":    tokenVersion,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無ければ環境変数だけで動かす
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Shipment{},
		&model.Testimonial{},
		&model.RefreshToken{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	shipmentRepo := infraRepo.NewShipmentGormRepository(gormDB)
	testimonialRepo := infraRepo.NewTestimonialGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	codeGen := tracking.NewGenerator()

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//refresh TTL
	refreshTTL := 14 * 24 * time.Hour

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	logoutUC := auth.NewLogoutUsecase(rtRepo, clock)
	shipmentUC := usecase.NewShipmentUsecase(shipmentRepo, codeGen, clock, cfg.Currency)
	adminShipmentUC := usecase.NewAdminShipmentUsecase(txManager, shipmentRepo, userRepo, clock, cfg.Currency)
	statsUC := usecase.NewStatsUsecase(userRepo, shipmentRepo)
	testimonialUC := usecase.NewTestimonialUsecase(testimonialRepo, clock)

	//Handler生成。
	//セッションCookieは利用者用と管理者用で名前空間を分ける
	userAuthH := handler.NewAuthHandler(registerUC, loginUC, logoutUC, refreshTTL, handler.CookieConfig{
		Name:   cfg.UserSessionCookie,
		Path:   "/",
		Secure: cfg.CookieSecure,
	}, false)
	adminAuthH := handler.NewAuthHandler(registerUC, loginUC, logoutUC, refreshTTL, handler.CookieConfig{
		Name:   cfg.AdminSessionCookie,
		Path:   "/admin",
		Secure: cfg.CookieSecure,
	}, true)

	handlers := server.Handlers{
		UserAuth:       userAuthH,
		AdminAuth:      adminAuthH,
		Shipments:      handler.NewShipmentHandler(shipmentUC),
		Testimonials:   handler.NewTestimonialHandler(testimonialUC),
		AdminDashboard: handler.NewAdminDashboardHandler(statsUC, adminShipmentUC, clock),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, userRepo, handlers); err != nil {
		panic(err)
	}
}
