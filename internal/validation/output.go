package validation

import (
	"fmt"
	"math"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/domain/pcos"
)

// Output-schema checks mirror the prediction result invariants. They
// run after inference and catch model/feature-contract drift before a
// malformed result reaches the caller.

// ValidateCycleOutput checks a cycle prediction against its invariants
func ValidateCycleOutput(p *cycle.Prediction) (bool, []string) {
	var errs []string

	if p == nil {
		return false, []string{"missing prediction result"}
	}

	if p.PredictedStartDate.IsZero() {
		errs = append(errs, "missing required output field: predicted_start_date")
	}

	if p.PredictedCycleLength < cycle.MinCycleLength || p.PredictedCycleLength > cycle.MaxCycleLength {
		errs = append(errs, fmt.Sprintf("predicted_cycle_length must be between %d and %d",
			cycle.MinCycleLength, cycle.MaxCycleLength))
	}

	if badUnit(p.Confidence) {
		errs = append(errs, "confidence must be between 0 and 1")
	}

	fw := p.FertileWindow
	if fw.Start.IsZero() || fw.End.IsZero() || fw.Peak.IsZero() {
		errs = append(errs, "missing required output field: fertile_window")
	} else if fw.Peak.Before(fw.Start) || fw.End.Before(fw.Peak) {
		errs = append(errs, "fertile_window must be ordered start <= peak <= end")
	}

	if p.Phases.Menstrual.Start.IsZero() || p.Phases.Luteal.End.IsZero() {
		errs = append(errs, "missing required output field: cycle_phase_predictions")
	}

	return len(errs) == 0, errs
}

// ValidatePCOSOutput checks a PCOS risk prediction against its invariants
func ValidatePCOSOutput(p *pcos.Prediction) (bool, []string) {
	var errs []string

	if p == nil {
		return false, []string{"missing prediction result"}
	}

	if badUnit(p.RiskScore) {
		errs = append(errs, "risk_score must be between 0 and 1")
	}

	if !p.RiskLevel.Valid() {
		errs = append(errs, fmt.Sprintf("unknown risk_level: %q", p.RiskLevel))
	}

	if badUnit(p.Confidence) {
		errs = append(errs, "confidence must be between 0 and 1")
	}

	return len(errs) == 0, errs
}

// badUnit reports whether v falls outside [0,1] or is not a finite number
func badUnit(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1
}
