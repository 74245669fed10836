package cycle

import "time"

// Hard domain bounds on a predicted cycle length, in days
const (
	MinCycleLength = 21
	MaxCycleLength = 45
)

// FertileWindow is the estimated date range of peak conception
// probability, anchored 14 days before the predicted next cycle start
type FertileWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Peak  time.Time `json:"peak"`
}

// PhaseWindow bounds a single cycle phase
type PhaseWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Phases holds the predicted boundaries of the four cycle phases
type Phases struct {
	Menstrual  PhaseWindow `json:"menstrual"`
	Follicular PhaseWindow `json:"follicular"`
	Ovulation  PhaseWindow `json:"ovulation"`
	Luteal     PhaseWindow `json:"luteal"`
}

// Prediction is the result of a next-cycle prediction
type Prediction struct {
	PredictedStartDate   time.Time     `json:"predicted_start_date"`
	PredictedCycleLength int           `json:"predicted_cycle_length"`
	Confidence           float64       `json:"confidence"`
	FertileWindow        FertileWindow `json:"fertile_window"`
	Phases               Phases        `json:"cycle_phase_predictions"`
	ModelVersion         string        `json:"model_version"`
}
