package types

import (
	"fmt"
	"strings"
	"time"
)

// PanelTechnology is the cell technology of a solar panel.
type PanelTechnology string

const (
	TechnologyMonocrystalline PanelTechnology = "Monocristalino"
	TechnologyPolycrystalline PanelTechnology = "Policristalino"
	TechnologyThinFilm        PanelTechnology = "Thin Film"
)

// InverterType is the topology of an inverter.
type InverterType string

const (
	InverterString InverterType = "string"
	InverterMicro  InverterType = "micro"
	InverterPower  InverterType = "power"
)

// SolarPanel is a catalog entry for a panel model.
type SolarPanel struct {
	ID            string          `json:"id"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Power         float64         `json:"power"` // W
	Price         float64         `json:"price"`
	Efficiency    float64         `json:"efficiency"` // percent
	Voltage       float64         `json:"voltage"`
	Current       float64         `json:"current"`
	Length        float64         `json:"length"`
	Width         float64         `json:"width"`
	Thickness     float64         `json:"thickness"`
	Warranty      int             `json:"warranty"` // years
	Technology    PanelTechnology `json:"technology"`
	Certification string          `json:"certification"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"created_at,omitzero"`
	UpdatedAt     time.Time       `json:"updated_at,omitzero"`
}

// Validate checks the fields required to price and size with a panel.
func (p SolarPanel) Validate() error {
	if strings.TrimSpace(p.Brand) == "" || strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("%w: brand and model are required", ErrValidation)
	}
	if p.Power <= 0 {
		return fmt.Errorf("%w: power must be positive", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	switch p.Technology {
	case "", TechnologyMonocrystalline, TechnologyPolycrystalline, TechnologyThinFilm:
	default:
		return fmt.Errorf("%w: unknown technology: %s", ErrValidation, p.Technology)
	}
	return nil
}

// Inverter is a catalog entry for an inverter model.
type Inverter struct {
	ID            string       `json:"id"`
	Brand         string       `json:"brand"`
	Model         string       `json:"model"`
	Power         float64      `json:"power"` // W
	Price         float64      `json:"price"`
	Type          InverterType `json:"type"`
	MinVoltage    float64      `json:"minVoltage"`
	MaxVoltage    float64      `json:"maxVoltage"`
	Efficiency    float64      `json:"efficiency"` // percent
	Warranty      int          `json:"warranty"`   // years
	MPPTChannels  int          `json:"mpptChannels"`
	Certification string       `json:"certification"`
	IsActive      bool         `json:"isActive"`
	CreatedAt     time.Time    `json:"created_at,omitzero"`
	UpdatedAt     time.Time    `json:"updated_at,omitzero"`
}

// Validate checks the fields required to price and size with an inverter.
func (i Inverter) Validate() error {
	if strings.TrimSpace(i.Brand) == "" || strings.TrimSpace(i.Model) == "" {
		return fmt.Errorf("%w: brand and model are required", ErrValidation)
	}
	if i.Power <= 0 {
		return fmt.Errorf("%w: power must be positive", ErrValidation)
	}
	if i.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if i.MaxVoltage < i.MinVoltage {
		return fmt.Errorf("%w: maxVoltage is below minVoltage", ErrValidation)
	}
	switch i.Type {
	case "", InverterString, InverterMicro, InverterPower:
	default:
		return fmt.Errorf("%w: unknown inverter type: %s", ErrValidation, i.Type)
	}
	return nil
}

// EquipmentFilter narrows a catalog listing. Zero values don't filter.
type EquipmentFilter struct {
	Brand    string
	MinPower float64
	MaxPower float64
	MinPrice float64
	MaxPrice float64
	// Kind is the panel technology or the inverter type.
	Kind string
	// IncludeInactive also returns items with IsActive unset.
	IncludeInactive bool
}

func (f EquipmentFilter) match(brand string, power, price float64, kind string, active bool) bool {
	if !f.IncludeInactive && !active {
		return false
	}
	if f.Brand != "" && !strings.Contains(strings.ToLower(brand), strings.ToLower(f.Brand)) {
		return false
	}
	if f.MinPower > 0 && power < f.MinPower {
		return false
	}
	if f.MaxPower > 0 && power > f.MaxPower {
		return false
	}
	if f.MinPrice > 0 && price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && price > f.MaxPrice {
		return false
	}
	if f.Kind != "" && f.Kind != kind {
		return false
	}
	return true
}

// MatchPanel returns true if p passes the filter.
func (f EquipmentFilter) MatchPanel(p SolarPanel) bool {
	return f.match(p.Brand, p.Power, p.Price, string(p.Technology), p.IsActive)
}

// MatchInverter returns true if i passes the filter.
func (f EquipmentFilter) MatchInverter(i Inverter) bool {
	return f.match(i.Brand, i.Power, i.Price, string(i.Type), i.IsActive)
}

// Load is an appliance used to estimate daily consumption.
type Load struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Power       float64 `json:"power"` // W
	HoursPerDay float64 `json:"hoursPerDay"`
}

// DailyKWH is the energy the load uses per day.
func (l Load) DailyKWH() float64 {
	return l.Power * l.HoursPerDay * float64(l.Quantity) / 1000
}
