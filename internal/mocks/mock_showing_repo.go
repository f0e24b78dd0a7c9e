package mocks

import (
	"context"

	"github.com/metinatakli/cinetrack/internal/domain"
)

type MockShowingRepo struct {
	domain.ShowingRepository
	GetByIdFunc func(ctx context.Context, id int) (*domain.Showing, error)
	GetAllFunc  func(ctx context.Context, movieID int, pagination domain.Pagination) ([]domain.Showing, *domain.Metadata, error)
}

func (m *MockShowingRepo) GetById(ctx context.Context, id int) (*domain.Showing, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockShowingRepo) GetAll(
	ctx context.Context,
	movieID int,
	pagination domain.Pagination) ([]domain.Showing, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, movieID, pagination)
}
