package mocks

import (
	"context"

	"github.com/dukex/hrflow/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockCatalog is a mock implementation of catalog.Catalog interface.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListAutomations(ctx context.Context) ([]models.AutomationAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.AutomationAction), args.Error(1)
}
