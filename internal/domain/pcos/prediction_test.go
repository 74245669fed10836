package pcos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForScore_Partition(t *testing.T) {
	// Bucket boundaries: low [0,0.3), moderate [0.3,0.6),
	// high [0.6,0.8), very_high [0.8,1.0]
	assert.Equal(t, RiskLow, LevelForScore(0))
	assert.Equal(t, RiskLow, LevelForScore(0.29))
	assert.Equal(t, RiskModerate, LevelForScore(0.3))
	assert.Equal(t, RiskModerate, LevelForScore(0.59))
	assert.Equal(t, RiskHigh, LevelForScore(0.6))
	assert.Equal(t, RiskHigh, LevelForScore(0.79))
	assert.Equal(t, RiskVeryHigh, LevelForScore(0.8))
	assert.Equal(t, RiskVeryHigh, LevelForScore(1.0))
}

func TestLevelForScore_Total(t *testing.T) {
	// Every score in [0,1] maps onto exactly one valid bucket
	for s := 0.0; s <= 1.0; s += 0.01 {
		assert.True(t, LevelForScore(s).Valid(), "score %f", s)
	}
}

func TestResolvedBMI(t *testing.T) {
	bmi := 23.4
	p := &Profile{BMI: &bmi}
	got, ok := p.ResolvedBMI()
	assert.True(t, ok)
	assert.Equal(t, 23.4, got)

	// Derived from height and weight when explicit BMI is absent
	height, weight := 170.0, 65.0
	p = &Profile{HeightCM: &height, WeightKG: &weight}
	got, ok = p.ResolvedBMI()
	assert.True(t, ok)
	assert.InDelta(t, 22.49, got, 0.01)

	_, ok = (&Profile{}).ResolvedBMI()
	assert.False(t, ok)
}
