package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ExportServiceMock struct {
	mock.Mock
}

func NewExportServiceMock() *ExportServiceMock {
	return &ExportServiceMock{}
}

func (m *ExportServiceMock) RenderICS(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *ExportServiceMock) RenderXML(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}
