package api

import (
	"fmt"

	"fembalance/internal/domain/cycle"
	"fembalance/internal/domain/symptom"
	"fembalance/internal/validation"
	"fembalance/pkg/errors"
)

// Request DTOs carry dates as strings; conversion to domain types
// collects every parse failure instead of stopping at the first.

type cycleRecordDTO struct {
	StartDate    string `json:"start_date"`
	CycleLength  *int   `json:"cycle_length,omitempty"`
	PeriodLength *int   `json:"period_length,omitempty"`
}

type predictCycleRequest struct {
	Cycles []cycleRecordDTO `json:"cycles"`
}

func (r predictCycleRequest) toDomain() ([]cycle.Record, error) {
	var details []string

	records := make([]cycle.Record, 0, len(r.Cycles))
	for i, c := range r.Cycles {
		if c.StartDate == "" {
			details = append(details, fmt.Sprintf("cycles[%d]: start_date is required", i))
			continue
		}
		t, err := validation.ParseDate(c.StartDate)
		if err != nil {
			details = append(details, fmt.Sprintf("cycles[%d]: invalid start_date %q", i, c.StartDate))
			continue
		}
		records = append(records, cycle.Record{
			StartDate:    t,
			CycleLength:  c.CycleLength,
			PeriodLength: c.PeriodLength,
		})
	}

	if len(details) > 0 {
		return nil, errors.NewInputError(details)
	}
	return records, nil
}

type symptomRecordDTO struct {
	Type     string `json:"type"`
	Severity int    `json:"severity"`
	Date     string `json:"date"`
	CycleDay *int   `json:"cycle_day,omitempty"`
}

type analyzeSymptomsRequest struct {
	Symptoms []symptomRecordDTO `json:"symptoms"`
}

func (r analyzeSymptomsRequest) toDomain() ([]symptom.Record, error) {
	var details []string

	records := make([]symptom.Record, 0, len(r.Symptoms))
	for i, s := range r.Symptoms {
		if s.Date == "" {
			details = append(details, fmt.Sprintf("symptoms[%d]: date is required", i))
			continue
		}
		t, err := validation.ParseDate(s.Date)
		if err != nil {
			details = append(details, fmt.Sprintf("symptoms[%d]: invalid date %q", i, s.Date))
			continue
		}
		records = append(records, symptom.Record{
			Type:     symptom.Type(s.Type),
			Severity: s.Severity,
			Date:     t,
			CycleDay: s.CycleDay,
		})
	}

	if len(details) > 0 {
		return nil, errors.NewInputError(details)
	}
	return records, nil
}
