package repository

import (
	"context"

	"logimaster/internal/domain/model"
	domainrepo "logimaster/internal/repository"

	"gorm.io/gorm"
)

type testimonialGormRepository struct {
	db *gorm.DB
}

func NewTestimonialGormRepository(db *gorm.DB) domainrepo.TestimonialRepository {
	return &testimonialGormRepository{db: db}
}

func (r *testimonialGormRepository) Create(ctx context.Context, t *model.Testimonial) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return err
	}
	return nil
}

func (r *testimonialGormRepository) ListAll(ctx context.Context) ([]model.Testimonial, error) {
	var items []model.Testimonial
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Testimonial{}, err
	}
	return items, nil
}
