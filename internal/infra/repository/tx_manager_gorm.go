package repository

import (
	"context"

	repo "logimaster/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	shipments repo.ShipmentRepository
}

func (r *txReposGorm) Shipments() repo.ShipmentRepository { return r.shipments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			shipments: NewShipmentGormRepository(tx),
		}
		return fn(r)
	})
}
