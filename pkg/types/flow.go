package types

// EnergyFlowRecord is how one hour of consumption was covered.
type EnergyFlowRecord struct {
	Hour            int     `json:"hour"`
	Consumption     float64 `json:"consumption"`
	SolarGeneration float64 `json:"solarGeneration"`
	// DirectUse is the solar energy consumed in the same hour.
	DirectUse float64 `json:"directUse"`
	// ExcessEnergy is solar energy left over after DirectUse.
	ExcessEnergy float64 `json:"excessEnergy"`
	// GridImport is consumption not covered by solar. For battery systems
	// this is what the battery or backup has to supply.
	GridImport float64 `json:"gridImport"`
}

// FlowTotals are the daily sums of an energy flow series.
type FlowTotals struct {
	DirectUse   float64 `json:"directUse"`
	Excess      float64 `json:"excess"`
	GridImport  float64 `json:"gridImport"`
	Consumption float64 `json:"consumption"`
	Generation  float64 `json:"generation"`
}

// SumFlow adds up every field of flow.
func SumFlow(flow []EnergyFlowRecord) FlowTotals {
	var t FlowTotals
	for _, r := range flow {
		t.DirectUse += r.DirectUse
		t.Excess += r.ExcessEnergy
		t.GridImport += r.GridImport
		t.Consumption += r.Consumption
		t.Generation += r.SolarGeneration
	}
	return t
}
