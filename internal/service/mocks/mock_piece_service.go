package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rhdocs/internal/model"
	"rhdocs/internal/service"
	"rhdocs/internal/storage"
)

type MockPieceService struct {
	mock.Mock
}

var _ service.PieceService = (*MockPieceService)(nil)

func document(args mock.Arguments) (*model.Document, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockPieceService) Create(ctx context.Context, meta model.Metadata, f service.File) (*model.Document, error) {
	return document(m.Called(ctx, meta, f))
}

func (m *MockPieceService) Update(ctx context.Context, id int64, meta model.Metadata, f *service.File) (*model.Document, error) {
	return document(m.Called(ctx, id, meta, f))
}

func (m *MockPieceService) Get(ctx context.Context, id int64) (*model.Document, error) {
	return document(m.Called(ctx, id))
}

func (m *MockPieceService) List(ctx context.Context, ownerID int64, limit, offset int) ([]model.Document, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockPieceService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Document, error) {
	return document(m.Called(ctx, id, status))
}

func (m *MockPieceService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPieceService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	info, _ := args.Get(1).(storage.ObjectInfo)
	return rc, info, args.Error(2)
}
