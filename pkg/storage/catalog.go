package storage

import (
	"sort"
	"strings"

	"github.com/solaradvisor/solaradvisor/pkg/types"
)

// DefaultPanels is the starter panel catalog.
func DefaultPanels() []types.SolarPanel {
	return []types.SolarPanel{
		{ID: "1", Brand: "Canadian Solar", Model: "CS3W-400P", Power: 400, Price: 120, Efficiency: 20.5, Technology: types.TechnologyPolycrystalline, IsActive: true},
		{ID: "2", Brand: "Jinko Solar", Model: "JKM420N-54HL4-B", Power: 420, Price: 125, Efficiency: 21.2, Technology: types.TechnologyMonocrystalline, IsActive: true},
		{ID: "3", Brand: "Trina Solar", Model: "TSM-405DE09", Power: 405, Price: 118, Efficiency: 20.8, Technology: types.TechnologyMonocrystalline, IsActive: true},
		{ID: "4", Brand: "LONGi Solar", Model: "LR4-72HPH-450M", Power: 450, Price: 135, Efficiency: 21.5, Technology: types.TechnologyMonocrystalline, IsActive: true},
		{ID: "5", Brand: "JA Solar", Model: "JAM60S21-330/MR", Power: 330, Price: 95, Efficiency: 19.8, Technology: types.TechnologyMonocrystalline, IsActive: true},
	}
}

// DefaultInverters is the starter inverter catalog.
func DefaultInverters() []types.Inverter {
	return []types.Inverter{
		{ID: "1", Brand: "SMA", Model: "SB 3000TL", Power: 3000, Price: 450, Type: types.InverterString, IsActive: true},
		{ID: "2", Brand: "Fronius", Model: "Primo 5.0-1", Power: 5000, Price: 650, Type: types.InverterString, IsActive: true},
		{ID: "3", Brand: "Huawei", Model: "SUN2000-8KTL", Power: 8000, Price: 850, Type: types.InverterString, IsActive: true},
		{ID: "4", Brand: "SolarEdge", Model: "SE10K", Power: 10000, Price: 1200, Type: types.InverterPower, IsActive: true},
		{ID: "5", Brand: "Enphase", Model: "IQ7+", Power: 290, Price: 180, Type: types.InverterMicro, IsActive: true},
	}
}

func lessBrandModel(brandA, modelA, brandB, modelB string) bool {
	a, b := strings.ToLower(brandA), strings.ToLower(brandB)
	if a != b {
		return a < b
	}
	return strings.ToLower(modelA) < strings.ToLower(modelB)
}

func sortPanels(panels []types.SolarPanel) {
	sort.SliceStable(panels, func(i, j int) bool {
		return lessBrandModel(panels[i].Brand, panels[i].Model, panels[j].Brand, panels[j].Model)
	})
}

func sortInverters(inverters []types.Inverter) {
	sort.SliceStable(inverters, func(i, j int) bool {
		return lessBrandModel(inverters[i].Brand, inverters[i].Model, inverters[j].Brand, inverters[j].Model)
	})
}
