package repository

import (
	"context"
	"errors"

	"logimaster/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// 統計で使う最小限のユーザー情報
type UserBasic struct {
	ID       int64
	Username string
}

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。重複はErrDuplicateUsername / ErrDuplicateEmail
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ユーザー情報の更新=>最後のログイン更新・スタッフ権限の変更など
	Update(ctx context.Context, user *model.User) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID int64) error

	//統計用（読み取りのみ）
	Count(ctx context.Context) (int64, error)
	CountStaff(ctx context.Context) (int64, error)
	//username昇順
	ListBasic(ctx context.Context) ([]UserBasic, error)
}
