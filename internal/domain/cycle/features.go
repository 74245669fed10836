package cycle

// Features represents engineered cycle features for ML model input
type Features struct {
	AvgCycleLength  float64 `json:"avg_cycle_length"`
	CycleRegularity float64 `json:"cycle_regularity"`
	AvgPeriodLength float64 `json:"avg_period_length"`
	TrendSlope      float64 `json:"trend_slope"`
	RecentAvg       float64 `json:"recent_avg"`
	Season          float64 `json:"season"`
	CyclesCount     float64 `json:"cycles_count"`
	DaysSinceLast   float64 `json:"days_since_last"`
	CycleStd        float64 `json:"cycle_std"`
}

// Vector converts Features to a float64 slice for ML model input.
// Order must match the training pipeline feature order (9 features total)
func (f *Features) Vector() []float64 {
	return []float64{
		f.AvgCycleLength,
		f.CycleRegularity,
		f.AvgPeriodLength,
		f.TrendSlope,
		f.RecentAvg,
		f.Season,
		f.CyclesCount,
		f.DaysSinceLast,
		f.CycleStd,
	}
}

// FeatureColumns returns the feature column names in vector order.
// A fresh slice is returned on every call; the column order is part of
// the model's versioned contract
func FeatureColumns() []string {
	return []string{
		"avg_cycle_length",
		"cycle_regularity",
		"avg_period_length",
		"trend_slope",
		"recent_avg",
		"season",
		"cycles_count",
		"days_since_last",
		"cycle_std",
	}
}
