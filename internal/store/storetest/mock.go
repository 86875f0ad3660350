// Package storetest provides testify mocks for store repositories.
package storetest

import (
	"context"

	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockRepository[T any] struct {
	mock.Mock
}

var _ store.Repository[struct{}] = (*MockRepository[struct{}])(nil)

func (m *MockRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) ListWhere(ctx context.Context, f store.Filter) ([]T, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) GetFirstWhere(ctx context.Context, f store.Filter) (*T, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) Add(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockRepository[T]) Update(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// PassthroughTx runs fn with the incoming context and counts calls.
type PassthroughTx struct {
	Calls int
}

func (p *PassthroughTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.Calls++
	return fn(ctx)
}
