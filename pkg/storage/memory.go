package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// Memory is a Database kept in process memory. It is used for local runs and
// tests and loses everything on restart.
type Memory struct {
	mu        sync.RWMutex
	panels    map[string]types.SolarPanel
	inverters map[string]types.Inverter
}

var _ Database = (*Memory)(nil)

// NewMemory returns a Memory database holding the given items.
func NewMemory(panels []types.SolarPanel, inverters []types.Inverter) *Memory {
	m := &Memory{
		panels:    make(map[string]types.SolarPanel, len(panels)),
		inverters: make(map[string]types.Inverter, len(inverters)),
	}
	for _, p := range panels {
		m.panels[p.ID] = p
	}
	for _, i := range inverters {
		m.inverters[i.ID] = i
	}
	return m
}

func (m *Memory) ListPanels(ctx context.Context, filter types.EquipmentFilter) ([]types.SolarPanel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.SolarPanel
	for _, p := range m.panels {
		if filter.MatchPanel(p) {
			out = append(out, p)
		}
	}
	sortPanels(out)
	return out, nil
}

func (m *Memory) GetPanel(ctx context.Context, id string) (types.SolarPanel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.panels[id]
	if !ok {
		return types.SolarPanel{}, fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	return p, nil
}

func (m *Memory) UpsertPanel(ctx context.Context, panel types.SolarPanel) error {
	if panel.ID == "" {
		return fmt.Errorf("panel id cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panels[panel.ID] = panel
	return nil
}

func (m *Memory) DeletePanel(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.panels[id]; !ok {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	delete(m.panels, id)
	return nil
}

func (m *Memory) ListInverters(ctx context.Context, filter types.EquipmentFilter) ([]types.Inverter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.Inverter
	for _, i := range m.inverters {
		if filter.MatchInverter(i) {
			out = append(out, i)
		}
	}
	sortInverters(out)
	return out, nil
}

func (m *Memory) GetInverter(ctx context.Context, id string) (types.Inverter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.inverters[id]
	if !ok {
		return types.Inverter{}, fmt.Errorf("%w: %s", ErrInverterNotFound, id)
	}
	return i, nil
}

func (m *Memory) UpsertInverter(ctx context.Context, inverter types.Inverter) error {
	if inverter.ID == "" {
		return fmt.Errorf("inverter id cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inverters[inverter.ID] = inverter
	return nil
}

func (m *Memory) DeleteInverter(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inverters[id]; !ok {
		return fmt.Errorf("%w: %s", ErrInverterNotFound, id)
	}
	delete(m.inverters, id)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
