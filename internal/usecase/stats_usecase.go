package usecase

import (
	"context"
	"net/http"
	"sort"
	"time"

	"logimaster/internal/domain/model"
	repo "logimaster/internal/repository"

	"github.com/shopspring/decimal"
)

// 顧客ごとの合計金額（荷物ゼロのユーザーも0で載せる）
type CustomerAmount struct {
	Username    string          `json:"username"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type StatsReport struct {
	TotalUsers           int64            `json:"total_users"`
	RegisteredAdmins     int64            `json:"registered_admins"`
	TotalDeliveries      int64            `json:"total_deliveries"`
	DispatchedPackages   int64            `json:"dispatched_packages"`
	PendingDeliveries    int64            `json:"pending_deliveries"`
	DailyDispatch        int64            `json:"daily_dispatch"`
	WeeklyDispatch       int64            `json:"weekly_dispatch"`
	MonthlyDispatch      int64            `json:"monthly_dispatch"`
	TotalWeightOnTransit decimal.Decimal  `json:"total_weight_on_transit"`
	CustomerAmounts      []CustomerAmount `json:"customer_amounts"`
}

// 統計はここに一本化する。利用者ダッシュボード・管理画面・JSON APIで共用。
type StatsUsecase struct {
	userRepo     repo.UserRepository
	shipmentRepo repo.ShipmentRepository
}

func NewStatsUsecase(userRepo repo.UserRepository, shipmentRepo repo.ShipmentRepository) *StatsUsecase {
	return &StatsUsecase{
		userRepo:     userRepo,
		shipmentRepo: shipmentRepo,
	}
}

// Snapshot はasOf時点の集計を返す。書き込みはしない。
// asOfを固定すれば同じ入力に対して同じ結果になる。
func (u *StatsUsecase) Snapshot(ctx context.Context, asOf time.Time) (StatsReport, error) {
	var rep StatsReport
	var err error

	rep.TotalUsers, err = u.userRepo.Count(ctx)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rep.RegisteredAdmins, err = u.userRepo.CountStaff(ctx)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rep.TotalDeliveries, err = u.shipmentRepo.Count(ctx)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rep.DispatchedPackages, err = u.shipmentRepo.CountStatusNot(ctx, model.ShipmentStatusPending)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rep.PendingDeliveries, err = u.shipmentRepo.CountByStatus(ctx, model.ShipmentStatusPending)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//daily = asOfから遡って24時間
	rep.DailyDispatch, err = u.shipmentRepo.CountCreatedInRange(ctx, asOf.Add(-24*time.Hour), asOf)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//weekly = asOfを含む暦週（月曜始まり）
	rep.WeeklyDispatch, err = u.shipmentRepo.CountCreatedInRange(ctx, startOfWeek(asOf), asOf)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//monthly = asOfを含む暦月
	rep.MonthlyDispatch, err = u.shipmentRepo.CountCreatedInRange(ctx, startOfMonth(asOf), asOf)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rep.TotalWeightOnTransit, err = u.shipmentRepo.SumWeightByStatus(ctx, model.ShipmentStatusOnTransit)
	if err != nil {
		return StatsReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	rep.CustomerAmounts, err = u.customerAmounts(ctx)
	if err != nil {
		return StatsReport{}, err
	}

	return rep, nil
}

func (u *StatsUsecase) customerAmounts(ctx context.Context) ([]CustomerAmount, error) {
	users, err := u.userRepo.ListBasic(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totals, err := u.shipmentRepo.SumPriceBySender(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	bySender := make(map[int64]decimal.Decimal, len(totals))
	for _, t := range totals {
		bySender[t.SenderID] = t.Total
	}

	amounts := make([]CustomerAmount, 0, len(users))
	for _, usr := range users {
		total, ok := bySender[usr.ID]
		if !ok {
			total = decimal.Zero
		}
		amounts = append(amounts, CustomerAmount{
			Username:    usr.Username,
			TotalAmount: total,
		})
	}

	//金額の大きい順。同額はusername昇順で並びを固定する
	sort.SliceStable(amounts, func(i, j int) bool {
		cmp := amounts[i].TotalAmount.Cmp(amounts[j].TotalAmount)
		if cmp != 0 {
			return cmp > 0
		}
		return amounts[i].Username < amounts[j].Username
	})

	return amounts, nil
}

// 週の開始（月曜 00:00）
func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0
	return day.AddDate(0, 0, -offset)
}

// 月の開始（1日 00:00）
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
