package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logimaster/internal/domain/model"
	repo "logimaster/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 追跡番号を作る約束
type TrackingCodeGenerator interface {
	Generate() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 採番が制約違反で跳ね返されたときのリトライ上限。
// 36^8通りあるので実際にここまで回ることはほぼない。
const maxTrackingCodeAttempts = 5

const trackingNotFoundMessage = "Shipment not found or not associated with your account."

type ShipmentUsecase struct {
	shipmentRepo repo.ShipmentRepository
	codeGen      TrackingCodeGenerator
	clock        Clock
	currency     string
}

// DI
func NewShipmentUsecase(
	shipmentRepo repo.ShipmentRepository,
	codeGen TrackingCodeGenerator,
	clock Clock,
	currency string,
) *ShipmentUsecase {
	return &ShipmentUsecase{
		shipmentRepo: shipmentRepo,
		codeGen:      codeGen,
		clock:        clock,
		currency:     currency,
	}
}

// POST /shipments の入力DTO
type CreateShipmentInput struct {
	RecipientName    string
	RecipientAddress string
	Weight           decimal.Decimal
	Price            decimal.Decimal
	//空なら自動採番
	TrackingCode string
}

func (u *ShipmentUsecase) Create(ctx context.Context, senderID int64, in CreateShipmentInput) (model.Shipment, error) {
	if senderID <= 0 {
		return model.Shipment{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.RecipientName)
	if name == "" {
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "recipient_name is required")
	}
	addr := strings.TrimSpace(in.RecipientAddress)
	if addr == "" {
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "recipient_address is required")
	}
	if in.Weight.IsNegative() {
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "weight must be >= 0")
	}
	if in.Price.IsNegative() {
		return model.Shipment{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	now := u.clock.Now()

	newShipment := func(code string) model.Shipment {
		return model.Shipment{
			TrackingCode:     code,
			SenderID:         senderID,
			RecipientName:    name,
			RecipientAddress: addr,
			Status:           model.ShipmentStatusPending,
			Weight:           in.Weight,
			Price:            in.Price,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}

	//呼び出し側が番号を持ち込んだ場合はそのまま使う（リトライしない）
	if supplied := strings.TrimSpace(in.TrackingCode); supplied != "" {
		s := newShipment(supplied)
		if err := u.shipmentRepo.Create(ctx, &s); err != nil {
			if errors.Is(err, repo.ErrDuplicateTrackingCode) {
				return model.Shipment{}, NewHTTPError(http.StatusConflict, "tracking code already exists")
			}
			return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return s, nil
	}

	//自動採番。ユニーク制約に当たったら番号を作り直してやり直す
	for attempt := 0; attempt < maxTrackingCodeAttempts; attempt++ {
		s := newShipment(u.codeGen.Generate())
		err := u.shipmentRepo.Create(ctx, &s)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, repo.ErrDuplicateTrackingCode) {
			return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return model.Shipment{}, NewHTTPError(http.StatusConflict, "could not assign a unique tracking code")
}

func (u *ShipmentUsecase) ListMyShipments(ctx context.Context, senderID int64) ([]model.Shipment, error) {
	if senderID <= 0 {
		return []model.Shipment{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.shipmentRepo.ListBySenderID(ctx, senderID)
	if err != nil {
		return []model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// Track は追跡番号から自分の荷物の状況を1行のテキストで返す。
// 番号が存在しない場合と他人の荷物だった場合は同じ文言にする。
func (u *ShipmentUsecase) Track(ctx context.Context, senderID int64, trackingCode string) (string, error) {
	if senderID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	code := strings.TrimSpace(trackingCode)
	if code == "" {
		return trackingNotFoundMessage, nil
	}

	s, err := u.shipmentRepo.FindByCodeAndSenderID(ctx, code, senderID)
	if errors.Is(err, repo.ErrNotFound) {
		return trackingNotFoundMessage, nil
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	terminal := "N/A"
	if s.CurrentTerminal != nil && *s.CurrentTerminal != "" {
		terminal = *s.CurrentTerminal
	}

	return fmt.Sprintf(
		"Tracking info for ID: %s - Status: %s, Terminal: %s, Weight: %s kg, Price: %s%s",
		s.TrackingCode, s.Status, terminal, s.Weight.StringFixed(2), u.currency, s.Price.StringFixed(2),
	), nil
}
