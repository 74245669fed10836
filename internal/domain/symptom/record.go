package symptom

import "time"

// Type is a symptom category
type Type string

const (
	TypeCramps           Type = "cramps"
	TypeBloating         Type = "bloating"
	TypeMoodSwings       Type = "mood_swings"
	TypeHeadache         Type = "headache"
	TypeFatigue          Type = "fatigue"
	TypeAcne             Type = "acne"
	TypeBreastTenderness Type = "breast_tenderness"
	TypeBackPain         Type = "back_pain"
	TypeNausea           Type = "nausea"
	TypeOther            Type = "other"
)

// KnownTypes returns the known symptom categories in encoding order.
// A fresh slice is returned on every call
func KnownTypes() []Type {
	return []Type{
		TypeCramps, TypeBloating, TypeMoodSwings, TypeHeadache, TypeFatigue,
		TypeAcne, TypeBreastTenderness, TypeBackPain, TypeNausea, TypeOther,
	}
}

// Known checks if the type is in the known category set
func (t Type) Known() bool {
	switch t {
	case TypeCramps, TypeBloating, TypeMoodSwings, TypeHeadache, TypeFatigue,
		TypeAcne, TypeBreastTenderness, TypeBackPain, TypeNausea, TypeOther:
		return true
	}
	return false
}

// Canonical maps any type onto the known set: unknown values encode as
// "other". This is deliberately more permissive than validation, which
// rejects unknown types outright
func (t Type) Canonical() Type {
	if t.Known() {
		return t
	}
	return TypeOther
}

// Encode returns the ordinal encoding of the (canonicalized) type
func (t Type) Encode() int {
	for i, known := range KnownTypes() {
		if t.Canonical() == known {
			return i
		}
	}
	return len(KnownTypes()) - 1
}

// String returns string representation
func (t Type) String() string {
	return string(t)
}

// Severity and cycle-day bounds for symptom records
const (
	MinSeverity = 1
	MaxSeverity = 10
	MinCycleDay = 1
	MaxCycleDay = 50
)

// Record is a single user-reported symptom.
// CycleDay is optional and estimated from the date when absent
type Record struct {
	Type     Type      `json:"type"`
	Severity int       `json:"severity"`
	Date     time.Time `json:"date"`
	CycleDay *int      `json:"cycle_day,omitempty"`
}
