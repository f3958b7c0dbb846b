package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/olenak/lingocards/internal/models"
)

// MockCollectionRepository is a mock implementation of repository.CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Insert(ctx context.Context, c models.Collection) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionRepository) Update(ctx context.Context, c models.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectionRepository) Get(ctx context.Context, id int64) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Count(ctx context.Context, filter models.CollectionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
