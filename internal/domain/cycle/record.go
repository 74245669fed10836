package cycle

import "time"

// Default values applied when optional record fields are absent.
// Centralized here so every call site shares one default policy
const (
	// DefaultCycleLength is assumed for the first record in a history,
	// which has no predecessor to derive a length from
	DefaultCycleLength = 28

	// DefaultPeriodLength is assumed when a record omits period length
	DefaultPeriodLength = 5
)

// Record is a single user-reported menstrual cycle.
// CycleLength and PeriodLength are optional; when absent they are
// derived inside feature engineering, never mutated on the record itself
type Record struct {
	StartDate    time.Time `json:"start_date"`
	CycleLength  *int      `json:"cycle_length,omitempty"`
	PeriodLength *int      `json:"period_length,omitempty"`
}

// ResolvedRecord is a Record with defaults applied and lengths derived.
// Produced by the feature engineer, request-scoped
type ResolvedRecord struct {
	StartDate    time.Time
	CycleLength  int
	PeriodLength int
}
