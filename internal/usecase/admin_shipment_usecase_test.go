package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"logimaster/internal/domain/model"
	repo "logimaster/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type txReposMock struct {
	shipments repo.ShipmentRepository
}

func (r *txReposMock) Shipments() repo.ShipmentRepository { return r.shipments }

func newAdminUsecase(shipments *ShipmentRepoMock, users *UserRepoMock, now time.Time) (*AdminShipmentUsecase, *TxManagerMock) {
	tx := &TxManagerMock{Repos: &txReposMock{shipments: shipments}}
	tx.On("WithinTx", mock.Anything).Return(nil)
	uc := NewAdminShipmentUsecase(tx, shipments, users, &fixedClock{t: now}, "$")
	return uc, tx
}

func TestBulkSetStatus_UpdatesRowsInsideTx(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	shipments := new(ShipmentRepoMock)
	shipments.On("UpdateStatusBulk", mock.Anything, []int64{1, 2}, model.ShipmentStatusCompleted, now).
		Return(int64(2), nil)

	uc, tx := newAdminUsecase(shipments, new(UserRepoMock), now)

	updated, err := uc.BulkSetStatus(context.Background(), BulkSetStatusInput{
		IDs:    []int64{1, 2},
		Status: "completed",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	tx.AssertCalled(t, "WithinTx", mock.Anything)
	shipments.AssertExpectations(t)
}

func TestBulkSetStatus_RejectsUnknownStatus(t *testing.T) {
	shipments := new(ShipmentRepoMock)
	uc, tx := newAdminUsecase(shipments, new(UserRepoMock), time.Now())

	_, err := uc.BulkSetStatus(context.Background(), BulkSetStatusInput{
		IDs:    []int64{1},
		Status: "delivered",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestBulkSetStatus_RejectsEmptyIDs(t *testing.T) {
	uc, _ := newAdminUsecase(new(ShipmentRepoMock), new(UserRepoMock), time.Now())

	_, err := uc.BulkSetStatus(context.Background(), BulkSetStatusInput{
		IDs:    nil,
		Status: "completed",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestInvoice_BuildsRows(t *testing.T) {
	created := time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)
	s := model.Shipment{
		ID:               10,
		TrackingCode:     "AB12CD34",
		SenderID:         1,
		RecipientName:    "Jane Doe",
		RecipientAddress: "12 Harbour Rd",
		Status:           model.ShipmentStatusArrived,
		Weight:           decimal.NewFromFloat(2.5),
		Price:            decimal.NewFromInt(1500),
		CreatedAt:        created,
	}

	shipments := new(ShipmentRepoMock)
	shipments.On("FindByID", mock.Anything, int64(10)).Return(s, nil)

	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)

	uc, _ := newAdminUsecase(shipments, users, time.Now())

	got, rows, err := uc.Invoice(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, "AB12CD34", got.TrackingCode)
	assert.Contains(t, rows, []string{"Tracking ID", "AB12CD34"})
	assert.Contains(t, rows, []string{"Sender", "alice"})
	assert.Contains(t, rows, []string{"Weight", "2.50 kg"})
	assert.Contains(t, rows, []string{"Price", "$1500.00"})
	assert.Contains(t, rows, []string{"Created At", "2025-05-20 08:30"})
}

func TestInvoice_NotFound(t *testing.T) {
	shipments := new(ShipmentRepoMock)
	shipments.On("FindByID", mock.Anything, int64(99)).Return(model.Shipment{}, repo.ErrNotFound)

	uc, _ := newAdminUsecase(shipments, new(UserRepoMock), time.Now())

	_, _, err := uc.Invoice(context.Background(), 99)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
