package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"github.com/solaradvisor/solaradvisor/pkg/log"
	"github.com/solaradvisor/solaradvisor/pkg/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	panelsCollection    = "panels"
	invertersCollection = "inverters"
)

// FirestoreProvider implements the Database interface using Google Cloud Firestore.
// Each catalog item is a document holding its JSON encoding plus the fields
// used for querying.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

var _ Database = (*FirestoreProvider)(nil)

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID verification could be here, but we allow empty if inferred.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// listQuery narrows the collection to active items unless the filter asks
// for everything. The remaining filters are applied after decoding.
func (f *FirestoreProvider) listQuery(ctx context.Context, name string, filter types.EquipmentFilter) *firestore.DocumentIterator {
	q := f.client.Collection(name).Query
	if !filter.IncludeInactive {
		q = q.Where("isActive", "==", true)
	}
	return q.Documents(ctx)
}

// decodeDoc reads the json field of doc into v.
func decodeDoc(ctx context.Context, doc *firestore.DocumentSnapshot, v any) error {
	val, err := doc.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "catalog doc missing json", slog.String("id", doc.Ref.ID))
		return fmt.Errorf("%s missing json: %w", doc.Ref.ID, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "catalog doc json not string", slog.String("id", doc.Ref.ID))
		return fmt.Errorf("%s json not string", doc.Ref.ID)
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", doc.Ref.ID, err)
	}
	return nil
}

func (f *FirestoreProvider) setDoc(ctx context.Context, collection, id string, v any, brand, model string, power, price float64, active bool) error {
	if id == "" {
		return fmt.Errorf("%s id cannot be empty", collection)
	}
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", collection, id, err)
	}
	_, err = f.client.Collection(collection).Doc(id).Set(ctx, map[string]interface{}{
		"json":     string(jsonBytes),
		"brand":    brand,
		"model":    model,
		"power":    power,
		"price":    price,
		"isActive": active,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", collection, id, err)
	}
	return nil
}

func (f *FirestoreProvider) getDoc(ctx context.Context, collection, id string, notFound error, v any) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", notFound)
	}
	doc, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", notFound, id)
		}
		return fmt.Errorf("failed to get %s %s: %w", collection, id, err)
	}
	return decodeDoc(ctx, doc, v)
}

func (f *FirestoreProvider) deleteDoc(ctx context.Context, collection, id string, notFound error) error {
	ref := f.client.Collection(collection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", notFound, id)
		}
		return fmt.Errorf("failed to get %s %s: %w", collection, id, err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", collection, id, err)
	}
	return nil
}

// ListPanels retrieves the panels from the "panels" collection that match filter.
func (f *FirestoreProvider) ListPanels(ctx context.Context, filter types.EquipmentFilter) ([]types.SolarPanel, error) {
	iter := f.listQuery(ctx, panelsCollection, filter)
	defer iter.Stop()

	var panels []types.SolarPanel
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating panels: %w", err)
		}
		var p types.SolarPanel
		if err := decodeDoc(ctx, doc, &p); err != nil {
			// Skip malformed documents
			continue
		}
		if filter.MatchPanel(p) {
			panels = append(panels, p)
		}
	}
	sortPanels(panels)
	return panels, nil
}

// GetPanel retrieves a single panel by ID.
func (f *FirestoreProvider) GetPanel(ctx context.Context, id string) (types.SolarPanel, error) {
	var p types.SolarPanel
	if err := f.getDoc(ctx, panelsCollection, id, ErrPanelNotFound, &p); err != nil {
		return types.SolarPanel{}, err
	}
	return p, nil
}

// UpsertPanel adds or replaces a panel. The document ID is the panel ID.
func (f *FirestoreProvider) UpsertPanel(ctx context.Context, panel types.SolarPanel) error {
	return f.setDoc(ctx, panelsCollection, panel.ID, panel, panel.Brand, panel.Model, panel.Power, panel.Price, panel.IsActive)
}

// DeletePanel removes a panel, returning ErrPanelNotFound if it doesn't exist.
func (f *FirestoreProvider) DeletePanel(ctx context.Context, id string) error {
	return f.deleteDoc(ctx, panelsCollection, id, ErrPanelNotFound)
}

// ListInverters retrieves the inverters from the "inverters" collection that match filter.
func (f *FirestoreProvider) ListInverters(ctx context.Context, filter types.EquipmentFilter) ([]types.Inverter, error) {
	iter := f.listQuery(ctx, invertersCollection, filter)
	defer iter.Stop()

	var inverters []types.Inverter
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating inverters: %w", err)
		}
		var i types.Inverter
		if err := decodeDoc(ctx, doc, &i); err != nil {
			continue
		}
		if filter.MatchInverter(i) {
			inverters = append(inverters, i)
		}
	}
	sortInverters(inverters)
	return inverters, nil
}

// GetInverter retrieves a single inverter by ID.
func (f *FirestoreProvider) GetInverter(ctx context.Context, id string) (types.Inverter, error) {
	var i types.Inverter
	if err := f.getDoc(ctx, invertersCollection, id, ErrInverterNotFound, &i); err != nil {
		return types.Inverter{}, err
	}
	return i, nil
}

// UpsertInverter adds or replaces an inverter. The document ID is the inverter ID.
func (f *FirestoreProvider) UpsertInverter(ctx context.Context, inverter types.Inverter) error {
	return f.setDoc(ctx, invertersCollection, inverter.ID, inverter, inverter.Brand, inverter.Model, inverter.Power, inverter.Price, inverter.IsActive)
}

// DeleteInverter removes an inverter, returning ErrInverterNotFound if it doesn't exist.
func (f *FirestoreProvider) DeleteInverter(ctx context.Context, id string) error {
	return f.deleteDoc(ctx, invertersCollection, id, ErrInverterNotFound)
}
