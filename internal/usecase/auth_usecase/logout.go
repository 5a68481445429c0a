package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"logimaster/internal/repository"
)

// refresh tokenが不正・失効済み
var ErrInvalidRefresh = errors.New("invalid refresh")

type LogoutUsecase struct {
	rtRepo repository.RefreshTokenRepository
	clock  Clock
}

func NewLogoutUsecase(rtRepo repository.RefreshTokenRepository, clock Clock) *LogoutUsecase {
	return &LogoutUsecase{rtRepo: rtRepo, clock: clock}
}

// Execute はCookieのrefresh tokenを失効させる。
func (u *LogoutUsecase) Execute(ctx context.Context, plainRefreshToken string) error {
	plain := strings.TrimSpace(plainRefreshToken)
	if plain == "" {
		return ErrInvalidRefresh
	}

	hash := sha256.Sum256([]byte(plain))
	tokenHash := hex.EncodeToString(hash[:])

	token, err := u.rtRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return ErrInvalidRefresh
		}
		return err
	}

	//二重ログアウトはそのまま成功扱い
	if token.RevokedAt != nil {
		return nil
	}

	return u.rtRepo.Revoke(ctx, token.ID, u.clock.Now())
}
