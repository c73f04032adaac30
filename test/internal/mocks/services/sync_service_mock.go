package services

import (
	"context"

	"church-calendar/internal/service"

	"github.com/stretchr/testify/mock"
)

type SyncServiceMock struct {
	mock.Mock
}

func NewSyncServiceMock() *SyncServiceMock {
	return &SyncServiceMock{}
}

func (m *SyncServiceMock) SyncAsana(ctx context.Context) (*service.SyncSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncSummary), args.Error(1)
}

func (m *SyncServiceMock) ImportICS(ctx context.Context, feedURL string) (*service.SyncSummary, error) {
	args := m.Called(ctx, feedURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SyncSummary), args.Error(1)
}

func (m *SyncServiceMock) CompressImages(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
