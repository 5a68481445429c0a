package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"logimaster/internal/domain/model"
	repo "logimaster/internal/repository"
)

type AdminShipmentUsecase struct {
	tx           repo.TransactionManager
	shipmentRepo repo.ShipmentRepository
	userRepo     repo.UserRepository
	clock        Clock
	currency     string
}

func NewAdminShipmentUsecase(
	tx repo.TransactionManager,
	shipmentRepo repo.ShipmentRepository,
	userRepo repo.UserRepository,
	clock Clock,
	currency string,
) *AdminShipmentUsecase {
	return &AdminShipmentUsecase{
		tx:           tx,
		shipmentRepo: shipmentRepo,
		userRepo:     userRepo,
		clock:        clock,
		currency:     currency,
	}
}

type BulkSetStatusInput struct {
	IDs    []int64
	Status string
}

// BulkSetStatus は選択した荷物のステータスをまとめて更新する。
// 1トランザクションで行い、途中状態は見せない。
func (u *AdminShipmentUsecase) BulkSetStatus(ctx context.Context, in BulkSetStatusInput) (int64, error) {
	if len(in.IDs) == 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "ids is required")
	}
	for _, id := range in.IDs {
		if id <= 0 {
			return 0, NewHTTPError(http.StatusBadRequest, "invalid id")
		}
	}

	newStatus := model.ShipmentStatus(strings.TrimSpace(in.Status))
	if !newStatus.Valid() {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var updated int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		n, err := r.Shipments().UpdateStatusBulk(ctx, in.IDs, newStatus, u.clock.Now())
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		updated = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// Invoice は請求書のCSV行を返す。PDFのレイアウトはここでは扱わない。
func (u *AdminShipmentUsecase) Invoice(ctx context.Context, shipmentID int64) (model.Shipment, [][]string, error) {
	if shipmentID <= 0 {
		return model.Shipment{}, nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.shipmentRepo.FindByID(ctx, shipmentID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Shipment{}, nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Shipment{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//送り主は荷物にカスケードで紐付いているので基本的に存在する
	senderName := ""
	sender, err := u.userRepo.FindByID(ctx, s.SenderID)
	if err == nil && sender != nil {
		senderName = sender.Username
	}

	rows := [][]string{
		{"Tracking ID", s.TrackingCode},
		{"Sender", senderName},
		{"Recipient Name", s.RecipientName},
		{"Recipient Address", s.RecipientAddress},
		{"Status", string(s.Status)},
		{"Weight", s.Weight.StringFixed(2) + " kg"},
		{"Price", u.currency + s.Price.StringFixed(2)},
		{"Created At", s.CreatedAt.Format("2006-01-02 15:04")},
	}

	return s, rows, nil
}
