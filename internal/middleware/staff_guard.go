package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているis_staffがtrueかどうかを確認します。

func StaffGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawStaff := c.Get(CtxIsStaffKey)
			isStaff, ok := rawStaff.(bool)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//一般ユーザーは拒否、スタッフだけ許可。
			//404ではなく403で返す（権限不足は隠さない）
			if !isStaff {
				return c.JSON(http.StatusForbidden, errorJSON("staff only"))
			}

			return next(c)
		}
	}
}
