package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	Currency string // 金額表示に使う通貨記号

	// 利用者と管理者でセッションCookieの名前空間を分ける。
	// ルートグループごとに固定で渡す（リクエスト中に共有設定を書き換えない）
	UserSessionCookie  string
	AdminSessionCookie string
	CookieSecure       bool

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		Currency: getenv("CURRENCY", "$"),

		UserSessionCookie:  getenv("USER_SESSION_COOKIE", "user_sessionid"),
		AdminSessionCookie: getenv("ADMIN_SESSION_COOKIE", "admin_sessionid"),
		CookieSecure:       getenv("COOKIE_SECURE", "true") != "false",

		GoEnv: getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
