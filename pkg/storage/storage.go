package storage

import (
	"context"
	"fmt"

	"github.com/levenlabs/go-lflag"
	"github.com/solaradvisor/solaradvisor/pkg/types"
)

var (
	ErrPanelNotFound    = fmt.Errorf("panel %w", types.ErrNotFound)
	ErrInverterNotFound = fmt.Errorf("inverter %w", types.ErrNotFound)
)

// Database persists the equipment catalog. Lists are ordered by brand then
// model.
type Database interface {
	// Panels
	ListPanels(ctx context.Context, filter types.EquipmentFilter) ([]types.SolarPanel, error)
	GetPanel(ctx context.Context, id string) (types.SolarPanel, error)
	UpsertPanel(ctx context.Context, panel types.SolarPanel) error
	DeletePanel(ctx context.Context, id string) error

	// Inverters
	ListInverters(ctx context.Context, filter types.EquipmentFilter) ([]types.Inverter, error)
	GetInverter(ctx context.Context, id string) (types.Inverter, error)
	UpsertInverter(ctx context.Context, inverter types.Inverter) error
	DeleteInverter(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}

// Configured sets up the Storage provider based on flags.
func Configured() Database {
	provider := lflag.String("storage-provider", "firestore", "Storage provider to use (available: firestore, memory)")

	var p struct{ Database }

	fs := configuredFirestore()

	lflag.Do(func() {
		switch *provider {
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		case "memory":
			p.Database = NewMemory(DefaultPanels(), DefaultInverters())
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}
