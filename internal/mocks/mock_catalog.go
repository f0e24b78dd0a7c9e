package mocks

import (
	"context"

	"github.com/metinatakli/cinetrack/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMovieCatalog struct {
	mock.Mock
}

func (m *MockMovieCatalog) FetchByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
