package repository

import (
	"context"
	"errors"
	"time"

	"logimaster/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	// 対象の荷物が見つからない
	ErrNotFound = errors.New("not found")

	// tracking_codeのユニーク制約に当たった
	ErrDuplicateTrackingCode = errors.New("tracking code already exists")
)

// 送り主ごとの合計金額（集計クエリの結果行）
type SenderPriceTotal struct {
	SenderID int64
	Total    decimal.Decimal
}

type ShipmentRepository interface {
	//1件保存。tracking_code重複はErrDuplicateTrackingCodeを返す
	Create(ctx context.Context, s *model.Shipment) error
	FindByID(ctx context.Context, id int64) (model.Shipment, error)

	//他人の荷物は存在しない扱い（ErrNotFound）にする
	FindByCodeAndSenderID(ctx context.Context, code string, senderID int64) (model.Shipment, error)

	//updated_atの新しい順
	ListBySenderID(ctx context.Context, senderID int64) ([]model.Shipment, error)

	//対象行のupdated_atも更新する。更新件数を返す
	UpdateStatusBulk(ctx context.Context, ids []int64, status model.ShipmentStatus, now time.Time) (int64, error)

	//統計用の集計
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.ShipmentStatus) (int64, error)
	CountStatusNot(ctx context.Context, status model.ShipmentStatus) (int64, error)
	CountCreatedInRange(ctx context.Context, from time.Time, to time.Time) (int64, error)
	//該当0件なら0を返す（nullにしない）
	SumWeightByStatus(ctx context.Context, status model.ShipmentStatus) (decimal.Decimal, error)
	SumPriceBySender(ctx context.Context) ([]SenderPriceTotal, error)
}
