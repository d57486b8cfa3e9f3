package entity

// HolderRecord is a single top-holder entry as reported by a block explorer.
type HolderRecord struct {
	Address string  `json:"address"`
	Percent float64 `json:"percent"` // percentage of total supply, [0,100]
}

// HolderDistribution summarizes supply concentration among the top holders.
// All percentages are in [0,100]; the boolean flags are deterministic
// functions of fixed thresholds.
type HolderDistribution struct {
	TotalHolders         int      `json:"totalHolders"`
	TopHolderPct         float64  `json:"topHolderPct"`
	Top5Pct              float64  `json:"top5Pct"`
	Top10Pct             float64  `json:"top10Pct"`
	ConcentrationRisks   []string `json:"concentrationRisks,omitempty"`
	IsHighlyConcentrated bool     `json:"isHighlyConcentrated"`
}
