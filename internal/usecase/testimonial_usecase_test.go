package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"logimaster/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type TestimonialRepoMock struct{ mock.Mock }

func (m *TestimonialRepoMock) Create(ctx context.Context, t *model.Testimonial) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TestimonialRepoMock) ListAll(ctx context.Context) ([]model.Testimonial, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Testimonial)
	return items, args.Error(1)
}

func TestCreateTestimonial(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	repoMock := new(TestimonialRepoMock)
	repoMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Testimonial")).Return(nil).Once()

	uc := NewTestimonialUsecase(repoMock, &fixedClock{t: now})

	out, err := uc.Create(context.Background(), CreateTestimonialInput{
		Name:    "  Ada  ",
		Content: "Fast delivery",
		Rating:  4,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Ada", out.Name)
	assert.Equal(t, 4, out.Rating)
	assert.Equal(t, now, out.CreatedAt)
	repoMock.AssertExpectations(t)
}

func TestCreateTestimonial_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   CreateTestimonialInput
	}{
		{"empty name", CreateTestimonialInput{Content: "good", Rating: 5}},
		{"blank content", CreateTestimonialInput{Name: "Ada", Content: "   ", Rating: 5}},
		{"rating too low", CreateTestimonialInput{Name: "Ada", Content: "good", Rating: 0}},
		{"rating too high", CreateTestimonialInput{Name: "Ada", Content: "good", Rating: 6}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repoMock := new(TestimonialRepoMock)
			uc := NewTestimonialUsecase(repoMock, &fixedClock{t: time.Now()})

			_, err := uc.Create(context.Background(), tc.in)

			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			repoMock.AssertNotCalled(t, "Create")
		})
	}
}

func TestListTestimonials(t *testing.T) {
	items := []model.Testimonial{
		{Name: "Ada", Content: "great", Rating: 5},
		{Name: "Ben", Content: "ok", Rating: 3},
	}

	repoMock := new(TestimonialRepoMock)
	repoMock.On("ListAll", mock.Anything).Return(items, nil)

	uc := NewTestimonialUsecase(repoMock, &fixedClock{t: time.Now()})

	out, err := uc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, items, out)
}
