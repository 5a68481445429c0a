package repository

import (
	"context"

	"logimaster/internal/domain/model"
)

type TestimonialRepository interface {
	Create(ctx context.Context, t *model.Testimonial) error
	//新しい順
	ListAll(ctx context.Context) ([]model.Testimonial, error)
}
