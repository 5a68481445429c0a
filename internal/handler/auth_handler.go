package handler

import (
	"net/http"
	"time"

	auth "logimaster/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// セッションCookieの名前空間。
// 利用者用と管理者用でインスタンスごとに固定する（共有設定は書き換えない）
type CookieConfig struct {
	Name   string
	Path   string
	Secure bool
}

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	logoutUC   *auth.LogoutUsecase       // ログアウトusecase
	refreshTTL time.Duration             // refresh cookie の有効期限
	cookie     CookieConfig
	staffOnly  bool // trueなら管理者ログイン（スタッフ以外は拒否）
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	logoutUC *auth.LogoutUsecase,
	refreshTTL time.Duration,
	cookie CookieConfig,
	staffOnly bool,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		logoutUC:   logoutUC,
		refreshTTL: refreshTTL,
		cookie:     cookie,
		staffOnly:  staffOnly,
	}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	// usernameにはメールアドレスを入れてもよい
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, prefix string) {
	g := e.Group(prefix)

	if !h.staffOnly {
		g.POST("/signup", h.signup)
	}
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidUsername, auth.ErrInvalidEmailFormat, auth.ErrPasswordTooShort:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case auth.ErrUsernameAlreadyExists, auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// User-Agentを取得（refresh tokenに紐付ける）
	userAgent := c.Request().Header.Get("User-Agent")

	out, side, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Login:     req.Username,
		Password:  req.Password,
		UserAgent: userAgent,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		case auth.ErrUserInactive:
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "account disabled"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		}
	}

	//管理者用ログインは一般ユーザーを通さない
	if h.staffOnly && !out.User.IsStaff {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "staff only"})
	}

	// refresh cookie（名前空間はルートグループごと）
	h.setRefreshCookie(c, side.PlainRefreshToken)

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	cookie, err := c.Cookie(h.cookie.Name)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.logoutUC.Execute(c.Request().Context(), cookie.Value); err != nil {
		if err == auth.ErrInvalidRefresh {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// refresh tokenをCookieにセット。
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	exp := time.Now().Add(h.refreshTTL)

	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    plainRefresh,
		Path:     h.cookie.Path,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	}
	c.SetCookie(cookie)
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     h.cookie.Path,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)
}
