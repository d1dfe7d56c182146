package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rhdocs/internal/model"
	"rhdocs/internal/repository"
)

type MockPieceRepository struct {
	mock.Mock
}

var _ repository.PieceRepository = (*MockPieceRepository)(nil)

func (m *MockPieceRepository) document(args mock.Arguments) (*model.Document, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockPieceRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if f, ok := args.Get(0).(func(context.Context, *model.Document) *model.Document); ok {
		return f(ctx, doc), args.Error(1)
	}
	return m.document(args)
}

func (m *MockPieceRepository) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if f, ok := args.Get(0).(func(context.Context, *model.Document) *model.Document); ok {
		return f(ctx, doc), args.Error(1)
	}
	return m.document(args)
}

func (m *MockPieceRepository) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(func(context.Context, int64) *model.Document); ok {
		return f(ctx, id), args.Error(1)
	}
	return m.document(args)
}

func (m *MockPieceRepository) List(ctx context.Context, f repository.ListFilter) ([]model.Document, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockPieceRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Document, error) {
	return m.document(m.Called(ctx, id, status))
}

func (m *MockPieceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
