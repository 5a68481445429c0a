package usecase

import (
	"context"
	"net/http"
	"strings"

	"logimaster/internal/domain/model"
	repo "logimaster/internal/repository"
)

type TestimonialUsecase struct {
	testimonialRepo repo.TestimonialRepository
	clock           Clock
}

func NewTestimonialUsecase(testimonialRepo repo.TestimonialRepository, clock Clock) *TestimonialUsecase {
	return &TestimonialUsecase{
		testimonialRepo: testimonialRepo,
		clock:           clock,
	}
}

type CreateTestimonialInput struct {
	Name    string
	Content string
	Rating  int
}

func (u *TestimonialUsecase) Create(ctx context.Context, in CreateTestimonialInput) (model.Testimonial, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Testimonial{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.Testimonial{}, NewHTTPError(http.StatusBadRequest, "content is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Testimonial{}, NewHTTPError(http.StatusBadRequest, "rating must be 1-5")
	}

	t := model.Testimonial{
		Name:      name,
		Content:   content,
		Rating:    in.Rating,
		CreatedAt: u.clock.Now(),
	}
	if err := u.testimonialRepo.Create(ctx, &t); err != nil {
		return model.Testimonial{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return t, nil
}

func (u *TestimonialUsecase) List(ctx context.Context) ([]model.Testimonial, error) {
	items, err := u.testimonialRepo.ListAll(ctx)
	if err != nil {
		return []model.Testimonial{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
