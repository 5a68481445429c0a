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

// =====================
// Repository / 部品 mocks
// =====================

type ShipmentRepoMock struct{ mock.Mock }

func (m *ShipmentRepoMock) Create(ctx context.Context, s *model.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *ShipmentRepoMock) FindByID(ctx context.Context, id int64) (model.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) FindByCodeAndSenderID(ctx context.Context, code string, senderID int64) (model.Shipment, error) {
	args := m.Called(ctx, code, senderID)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) ListBySenderID(ctx context.Context, senderID int64) ([]model.Shipment, error) {
	args := m.Called(ctx, senderID)
	items, _ := args.Get(0).([]model.Shipment)
	return items, args.Error(1)
}

func (m *ShipmentRepoMock) UpdateStatusBulk(ctx context.Context, ids []int64, status model.ShipmentStatus, now time.Time) (int64, error) {
	args := m.Called(ctx, ids, status, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShipmentRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShipmentRepoMock) CountByStatus(ctx context.Context, status model.ShipmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShipmentRepoMock) CountStatusNot(ctx context.Context, status model.ShipmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShipmentRepoMock) CountCreatedInRange(ctx context.Context, from time.Time, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ShipmentRepoMock) SumWeightByStatus(ctx context.Context, status model.ShipmentStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *ShipmentRepoMock) SumPriceBySender(ctx context.Context) ([]repo.SenderPriceTotal, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.SenderPriceTotal)
	return rows, args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// 決まった順番で番号を返すスタブ
type codeGenStub struct {
	codes []string
	i     int
}

func (g *codeGenStub) Generate() string {
	if g.i >= len(g.codes) {
		return g.codes[len(g.codes)-1]
	}
	c := g.codes[g.i]
	g.i++
	return c
}

// =====================
// Create
// =====================

func TestCreateShipment_SetsPendingAndGeneratedCode(t *testing.T) {
	repoMock := new(ShipmentRepoMock)
	repoMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Shipment")).Return(nil).Once()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	gen := &codeGenStub{codes: []string{"AB12CD34"}}
	uc := NewShipmentUsecase(repoMock, gen, &fixedClock{t: now}, "$")

	out, err := uc.Create(context.Background(), 1, CreateShipmentInput{
		RecipientName:    "Jane Doe",
		RecipientAddress: "12 Harbour Rd",
		Weight:           decimal.NewFromFloat(2.5),
		Price:            decimal.NewFromInt(1500),
	})

	assert.NoError(t, err)
	assert.Equal(t, "AB12CD34", out.TrackingCode)
	assert.Len(t, out.TrackingCode, 8)
	assert.Equal(t, model.ShipmentStatusPending, out.Status)
	assert.Equal(t, now, out.CreatedAt)
	assert.Equal(t, now, out.UpdatedAt)
	repoMock.AssertExpectations(t)
}

func TestCreateShipment_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   CreateShipmentInput
	}{
		{"empty recipient name", CreateShipmentInput{RecipientAddress: "addr"}},
		{"empty recipient address", CreateShipmentInput{RecipientName: "name"}},
		{"negative weight", CreateShipmentInput{
			RecipientName: "name", RecipientAddress: "addr",
			Weight: decimal.NewFromInt(-1),
		}},
		{"negative price", CreateShipmentInput{
			RecipientName: "name", RecipientAddress: "addr",
			Price: decimal.NewFromInt(-1),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repoMock := new(ShipmentRepoMock)
			uc := NewShipmentUsecase(repoMock, &codeGenStub{codes: []string{"AB12CD34"}}, &fixedClock{t: time.Now()}, "$")

			_, err := uc.Create(context.Background(), 1, tc.in)

			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			repoMock.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreateShipment_RetriesOnDuplicateCode(t *testing.T) {
	repoMock := new(ShipmentRepoMock)
	//1回目は制約違反、2回目で成功
	repoMock.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateTrackingCode).Once()
	repoMock.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	gen := &codeGenStub{codes: []string{"AAAA1111", "BBBB2222"}}
	uc := NewShipmentUsecase(repoMock, gen, &fixedClock{t: time.Now()}, "$")

	out, err := uc.Create(context.Background(), 1, CreateShipmentInput{
		RecipientName:    "Jane Doe",
		RecipientAddress: "12 Harbour Rd",
	})

	assert.NoError(t, err)
	assert.Equal(t, "BBBB2222", out.TrackingCode)
	repoMock.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreateShipment_ConflictWhenRetriesExhausted(t *testing.T) {
	repoMock := new(ShipmentRepoMock)
	repoMock.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateTrackingCode)

	gen := &codeGenStub{codes: []string{"AAAA1111"}}
	uc := NewShipmentUsecase(repoMock, gen, &fixedClock{t: time.Now()}, "$")

	_, err := uc.Create(context.Background(), 1, CreateShipmentInput{
		RecipientName:    "Jane Doe",
		RecipientAddress: "12 Harbour Rd",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	repoMock.AssertNumberOfCalls(t, "Create", maxTrackingCodeAttempts)
}

func TestCreateShipment_SuppliedCodeIsNotRetried(t *testing.T) {
	repoMock := new(ShipmentRepoMock)
	repoMock.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateTrackingCode)

	uc := NewShipmentUsecase(repoMock, &codeGenStub{codes: []string{"ZZZZ9999"}}, &fixedClock{t: time.Now()}, "$")

	_, err := uc.Create(context.Background(), 1, CreateShipmentInput{
		RecipientName:    "Jane Doe",
		RecipientAddress: "12 Harbour Rd",
		TrackingCode:     "CUSTOM01",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	//持ち込み番号は作り直さない
	repoMock.AssertNumberOfCalls(t, "Create", 1)
}

// =====================
// Track
// =====================

func TestTrack_FormatsShipmentLine(t *testing.T) {
	terminal := "Lagos Hub"
	s := model.Shipment{
		TrackingCode:    "AB12CD34",
		SenderID:        1,
		Status:          model.ShipmentStatusOnTransit,
		CurrentTerminal: &terminal,
		Weight:          decimal.NewFromFloat(2.5),
		Price:           decimal.NewFromInt(1200),
	}

	repoMock := new(ShipmentRepoMock)
	repoMock.On("FindByCodeAndSenderID", mock.Anything, "AB12CD34", int64(1)).Return(s, nil)

	uc := NewShipmentUsecase(repoMock, &codeGenStub{codes: []string{"X"}}, &fixedClock{t: time.Now()}, "$")

	got, err := uc.Track(context.Background(), 1, "AB12CD34")

	assert.NoError(t, err)
	assert.Equal(t,
		"Tracking info for ID: AB12CD34 - Status: on_transit, Terminal: Lagos Hub, Weight: 2.50 kg, Price: $1200.00",
		got,
	)
}

func TestTrack_NoTerminalShowsNA(t *testing.T) {
	s := model.Shipment{
		TrackingCode: "AB12CD34",
		SenderID:     1,
		Status:       model.ShipmentStatusPending,
		Weight:       decimal.NewFromInt(1),
		Price:        decimal.NewFromInt(10),
	}

	repoMock := new(ShipmentRepoMock)
	repoMock.On("FindByCodeAndSenderID", mock.Anything, "AB12CD34", int64(1)).Return(s, nil)

	uc := NewShipmentUsecase(repoMock, &codeGenStub{codes: []string{"X"}}, &fixedClock{t: time.Now()}, "$")

	got, err := uc.Track(context.Background(), 1, "AB12CD34")

	assert.NoError(t, err)
	assert.Contains(t, got, "Terminal: N/A")
}

func TestTrack_MissingAndForeignCodeLookIdentical(t *testing.T) {
	repoMock := new(ShipmentRepoMock)
	//存在しない番号も他人の番号もrepoはErrNotFoundで返す
	repoMock.On("FindByCodeAndSenderID", mock.Anything, "NOSUCH00", int64(1)).Return(model.Shipment{}, repo.ErrNotFound)
	repoMock.On("FindByCodeAndSenderID", mock.Anything, "OTHERS00", int64(1)).Return(model.Shipment{}, repo.ErrNotFound)

	uc := NewShipmentUsecase(repoMock, &codeGenStub{codes: []string{"X"}}, &fixedClock{t: time.Now()}, "$")

	missing, err1 := uc.Track(context.Background(), 1, "NOSUCH00")
	foreign, err2 := uc.Track(context.Background(), 1, "OTHERS00")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, missing, foreign)
	assert.Equal(t, "Shipment not found or not associated with your account.", missing)
}

func TestListMyShipments(t *testing.T) {
	items := []model.Shipment{
		{TrackingCode: "BBBB2222"},
		{TrackingCode: "AAAA1111"},
	}

	repoMock := new(ShipmentRepoMock)
	repoMock.On("ListBySenderID", mock.Anything, int64(7)).Return(items, nil)

	uc := NewShipmentUsecase(repoMock, &codeGenStub{codes: []string{"X"}}, &fixedClock{t: time.Now()}, "$")

	out, err := uc.ListMyShipments(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, items, out)
}
