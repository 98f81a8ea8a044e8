package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/solaradvisor/solaradvisor/pkg/log"
	"github.com/solaradvisor/solaradvisor/pkg/storage"
)

// seed loads the default equipment catalog into storage. It targets the local
// firestore emulator unless FIRESTORE_EMULATOR_HOST is already set.
func main() {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		os.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8087")
	}
	s := storage.Configured()
	lflag.Configure()
	defer s.Close()

	ctx := context.Background()

	log.Ctx(ctx).InfoContext(ctx, "seeding equipment catalog")

	now := time.Now().UTC()
	for _, p := range storage.DefaultPanels() {
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := s.UpsertPanel(ctx, p); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to seed panel", "id", p.ID, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded panel %s: %s %s (%.0fW, $%.2f)\n", p.ID, p.Brand, p.Model, p.Power, p.Price)
	}
	for _, i := range storage.DefaultInverters() {
		i.CreatedAt = now
		i.UpdatedAt = now
		if err := s.UpsertInverter(ctx, i); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to seed inverter", "id", i.ID, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded inverter %s: %s %s (%.0fW, %s)\n", i.ID, i.Brand, i.Model, i.Power, i.Type)
	}

	log.Ctx(ctx).InfoContext(ctx, "seeded equipment catalog successfully")
}
