package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/solaradvisor/solaradvisor/pkg/log"
	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// catalog serves the CRUD endpoints for one kind of equipment.
type catalog[T any] struct {
	name string
	// kindParam is the query parameter that filters on technology or type.
	kindParam string

	list   func(context.Context, types.EquipmentFilter) ([]T, error)
	get    func(context.Context, string) (T, error)
	upsert func(context.Context, T) error
	remove func(context.Context, string) error

	validate func(T) error
	// blank returns the value a create request is decoded onto.
	blank func() T
	// stamp sets the ID and timestamps before an item is written.
	stamp   func(item *T, id string, created, updated time.Time)
	created func(T) time.Time
}

func (s *Server) panelCatalog() *catalog[types.SolarPanel] {
	return &catalog[types.SolarPanel]{
		name:      "panel",
		kindParam: "technology",
		list:      s.storage.ListPanels,
		get:       s.storage.GetPanel,
		upsert:    s.storage.UpsertPanel,
		remove:    s.storage.DeletePanel,
		validate:  types.SolarPanel.Validate,
		blank: func() types.SolarPanel {
			return types.SolarPanel{IsActive: true}
		},
		stamp: func(p *types.SolarPanel, id string, created, updated time.Time) {
			p.ID = id
			p.CreatedAt = created
			p.UpdatedAt = updated
		},
		created: func(p types.SolarPanel) time.Time { return p.CreatedAt },
	}
}

func (s *Server) inverterCatalog() *catalog[types.Inverter] {
	return &catalog[types.Inverter]{
		name:      "inverter",
		kindParam: "type",
		list:      s.storage.ListInverters,
		get:       s.storage.GetInverter,
		upsert:    s.storage.UpsertInverter,
		remove:    s.storage.DeleteInverter,
		validate:  types.Inverter.Validate,
		blank: func() types.Inverter {
			return types.Inverter{IsActive: true}
		},
		stamp: func(i *types.Inverter, id string, created, updated time.Time) {
			i.ID = id
			i.CreatedAt = created
			i.UpdatedAt = updated
		},
		created: func(i types.Inverter) time.Time { return i.CreatedAt },
	}
}

func (c *catalog[T]) filter(r *http.Request) (types.EquipmentFilter, error) {
	q := r.URL.Query()
	f := types.EquipmentFilter{
		Brand: q.Get("brand"),
		Kind:  q.Get(c.kindParam),
		// active=false lists inactive items too
		IncludeInactive: q.Get("active") == "false",
	}
	for param, dst := range map[string]*float64{
		"minPower": &f.MinPower,
		"maxPower": &f.MaxPower,
		"minPrice": &f.MinPrice,
		"maxPrice": &f.MaxPrice,
	} {
		v := q.Get(param)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return types.EquipmentFilter{}, fmt.Errorf("%w: invalid %s: %q", types.ErrValidation, param, v)
		}
		*dst = parsed
	}
	return f, nil
}

func (c *catalog[T]) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := c.filter(r)
	if err != nil {
		writeErrorKind(ctx, w, err, "list "+c.name+"s")
		return
	}
	items, err := c.list(ctx, f)
	if err != nil {
		writeErrorKind(ctx, w, err, "list "+c.name+"s")
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSONData(w, items)
}

func (c *catalog[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	item, err := c.get(ctx, r.PathValue("id"))
	if err != nil {
		writeErrorKind(ctx, w, err, "get "+c.name)
		return
	}
	writeJSONData(w, item)
}

func (c *catalog[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	item := c.blank()
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	c.stamp(&item, id, now, now)
	if err := c.validate(item); err != nil {
		writeErrorKind(ctx, w, err, "create "+c.name)
		return
	}
	if err := c.upsert(ctx, item); err != nil {
		writeErrorKind(ctx, w, err, "create "+c.name)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "created "+c.name, slog.String("id", id))
	writeJSON(w, http.StatusCreated, apiResponse{Success: true, Data: item})
}

// handleUpdate decodes the body over the stored item, so fields left out of
// the request keep their current values.
func (c *catalog[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	existing, err := c.get(ctx, id)
	if err != nil {
		writeErrorKind(ctx, w, err, "get "+c.name)
		return
	}
	item := existing
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	c.stamp(&item, id, c.created(existing), time.Now().UTC())
	if err := c.validate(item); err != nil {
		writeErrorKind(ctx, w, err, "update "+c.name)
		return
	}
	if err := c.upsert(ctx, item); err != nil {
		writeErrorKind(ctx, w, err, "update "+c.name)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "updated "+c.name, slog.String("id", id))
	writeJSONData(w, item)
}

func (c *catalog[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if err := c.remove(ctx, id); err != nil {
		writeErrorKind(ctx, w, err, "delete "+c.name)
		return
	}
	log.Ctx(ctx).InfoContext(ctx, "deleted "+c.name, slog.String("id", id))
	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}
