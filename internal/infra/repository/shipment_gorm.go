package repository

import (
	"context"
	"errors"
	"time"

	"logimaster/internal/domain/model"
	repo "logimaster/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShipmentGormRepository struct {
	db *gorm.DB
}

func NewShipmentGormRepository(db *gorm.DB) *ShipmentGormRepository {
	return &ShipmentGormRepository{db: db}
}

// Postgresのユニーク制約違反（SQLSTATE 23505）かどうか
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *ShipmentGormRepository) Create(ctx context.Context, s *model.Shipment) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		//事前チェックはしない。制約違反を拾ってusecase側でリトライさせる
		if isUniqueViolation(err) {
			return repo.ErrDuplicateTrackingCode
		}
		return err
	}
	return nil
}

func (r *ShipmentGormRepository) FindByID(ctx context.Context, id int64) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) FindByCodeAndSenderID(ctx context.Context, code string, senderID int64) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).
		Where("tracking_code = ? AND sender_id = ?", code, senderID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		//他人の荷物もここに落ちる（存在を教えない）
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) ListBySenderID(ctx context.Context, senderID int64) ([]model.Shipment, error) {
	var items []model.Shipment
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("updated_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Shipment{}, err
	}
	return items, nil
}

func (r *ShipmentGormRepository) UpdateStatusBulk(ctx context.Context, ids []int64, status model.ShipmentStatus, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *ShipmentGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Shipment{}).Count(&total).Error
	return total, err
}

func (r *ShipmentGormRepository) CountByStatus(ctx context.Context, status model.ShipmentStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}

func (r *ShipmentGormRepository) CountStatusNot(ctx context.Context, status model.ShipmentStatus) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("status <> ?", status).
		Count(&total).Error
	return total, err
}

func (r *ShipmentGormRepository) CountCreatedInRange(ctx context.Context, from time.Time, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&total).Error
	return total, err
}

func (r *ShipmentGormRepository) SumWeightByStatus(ctx context.Context, status model.ShipmentStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(weight), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *ShipmentGormRepository) SumPriceBySender(ctx context.Context) ([]repo.SenderPriceTotal, error) {
	var rows []repo.SenderPriceTotal
	err := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Select("sender_id, COALESCE(SUM(price), 0) AS total").
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return []repo.SenderPriceTotal{}, err
	}
	return rows, nil
}
