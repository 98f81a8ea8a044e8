package storagemock

import (
	"context"

	"github.com/solaradvisor/solaradvisor/pkg/storage"
	"github.com/solaradvisor/solaradvisor/pkg/types"
	"github.com/stretchr/testify/mock"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) ListPanels(ctx context.Context, filter types.EquipmentFilter) ([]types.SolarPanel, error) {
	args := m.Called(ctx, filter)
	if len(args) > 0 {
		return args.Get(0).([]types.SolarPanel), args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) GetPanel(ctx context.Context, id string) (types.SolarPanel, error) {
	args := m.Called(ctx, id)
	if len(args) > 0 {
		return args.Get(0).(types.SolarPanel), args.Error(1)
	}
	return types.SolarPanel{}, nil
}

func (m *MockDatabase) UpsertPanel(ctx context.Context, panel types.SolarPanel) error {
	args := m.Called(ctx, panel)
	return args.Error(0)
}

func (m *MockDatabase) DeletePanel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDatabase) ListInverters(ctx context.Context, filter types.EquipmentFilter) ([]types.Inverter, error) {
	args := m.Called(ctx, filter)
	if len(args) > 0 {
		return args.Get(0).([]types.Inverter), args.Error(1)
	}
	return nil, nil
}

func (m *MockDatabase) GetInverter(ctx context.Context, id string) (types.Inverter, error) {
	args := m.Called(ctx, id)
	if len(args) > 0 {
		return args.Get(0).(types.Inverter), args.Error(1)
	}
	return types.Inverter{}, nil
}

func (m *MockDatabase) UpsertInverter(ctx context.Context, inverter types.Inverter) error {
	args := m.Called(ctx, inverter)
	return args.Error(0)
}

func (m *MockDatabase) DeleteInverter(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	if len(args) > 0 {
		return args.Error(0)
	}
	return nil
}
