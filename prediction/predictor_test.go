package prediction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raksetu/prediction"
	"raksetu/types"
)

func assessmentFor(t *testing.T, assessments []types.ShortageAssessment, bt types.BloodType) types.ShortageAssessment {
	t.Helper()
	for _, a := range assessments {
		if a.BloodType == bt {
			return a
		}
	}
	t.Fatalf("no assessment for %s", bt)
	return types.ShortageAssessment{}
}

func TestAssess_CriticalThresholdIsAbsolute(t *testing.T) {
	banks := []types.BloodBank{{Name: "Central", Inventory: map[types.BloodType]int{types.APositive: 5}}}

	// zero demand and heavy demand both classify as critical at 5 units
	for _, recent := range []map[types.BloodType]int{{}, {types.APositive: 100}} {
		got := prediction.Assess(banks, recent, 7, time.Now())
		a := assessmentFor(t, got, types.APositive)
		assert.Equal(t, types.ShortageCritical, a.Severity)
	}
}

func TestAssess_StableWithZeroDemandGetsSentinelDays(t *testing.T) {
	banks := []types.BloodBank{{Name: "Central", Inventory: map[types.BloodType]int{types.BPositive: 200}}}

	got := prediction.Assess(banks, nil, 7, time.Now())
	a := assessmentFor(t, got, types.BPositive)
	assert.Equal(t, types.ShortageStable, a.Severity)
	assert.Equal(t, prediction.InfiniteDays, a.DaysUntilShortage)
	assert.Equal(t, 0.0, a.DemandRate)
}

func TestAssess_OPositiveScenario(t *testing.T) {
	// inventory {O+: 8}, 14 O+ requests over 7 days -> 2/day raw, x1.5 = 3/day
	// weighted; 8 <= 10 so critical with 0 days to shortage
	banks := []types.BloodBank{{Name: "Central", Inventory: map[types.BloodType]int{types.OPositive: 8}}}
	recent := map[types.BloodType]int{types.OPositive: 14}

	got := prediction.Assess(banks, recent, 7, time.Now())
	a := assessmentFor(t, got, types.OPositive)

	assert.Equal(t, types.ShortageCritical, a.Severity)
	assert.Equal(t, 2.0, a.DemandRate)
	assert.Equal(t, 0, a.DaysUntilShortage)
	assert.Equal(t, 8, a.CurrentUnits)
	assert.Equal(t, 1, a.BanksWithStock)
}

func TestAssess_LowTier(t *testing.T) {
	banks := []types.BloodBank{{Name: "Central", Inventory: map[types.BloodType]int{types.ABNegative: 20}}}

	got := prediction.Assess(banks, map[types.BloodType]int{types.ABNegative: 7}, 7, time.Now())
	a := assessmentFor(t, got, types.ABNegative)

	assert.Equal(t, types.ShortageLow, a.Severity)
	// weighted demand 1/day * 0.7; days to critical = (20-10)/0.7 = 14.28 -> 14
	assert.Equal(t, 14, a.DaysUntilShortage)
}

func TestAssess_WarningWhenLowThresholdIsClose(t *testing.T) {
	// 30 units, 35 B+ requests over 7 days -> 5/day raw, x1.1 = 5.5/day
	// weighted; days to low = (30-25)/5.5 = 0.9 -> 0, within the warning window
	banks := []types.BloodBank{{Name: "Central", Inventory: map[types.BloodType]int{types.BPositive: 30}}}

	got := prediction.Assess(banks, map[types.BloodType]int{types.BPositive: 35}, 7, time.Now())
	a := assessmentFor(t, got, types.BPositive)
	assert.Equal(t, types.ShortageWarning, a.Severity)
}

func TestAssess_SumsAcrossBanksAndCountsStockedBanks(t *testing.T) {
	banks := []types.BloodBank{
		{Name: "North", Inventory: map[types.BloodType]int{types.ONegative: 12}},
		{Name: "South", Inventory: map[types.BloodType]int{types.ONegative: 20}},
		{Name: "Empty", Inventory: map[types.BloodType]int{types.ONegative: 0}},
	}

	got := prediction.Assess(banks, nil, 7, time.Now())
	a := assessmentFor(t, got, types.ONegative)
	assert.Equal(t, 32, a.CurrentUnits)
	assert.Equal(t, 2, a.BanksWithStock)
}

func TestAssess_SortedCriticalFirst(t *testing.T) {
	banks := []types.BloodBank{{Name: "Central", Inventory: map[types.BloodType]int{
		types.APositive: 500, types.BPositive: 500, types.ABPositive: 500, types.ABNegative: 500,
		types.ANegative: 500, types.BNegative: 500, types.OPositive: 500,
		types.ONegative: 3, // the one shortage
	}}}

	got := prediction.Assess(banks, nil, 7, time.Now())
	require.Len(t, got, 8, "every canonical type is assessed")
	assert.Equal(t, types.ONegative, got[0].BloodType)
	assert.Equal(t, types.ShortageCritical, got[0].Severity)
}

func TestCountRecentByType_RespectsWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	emergencies := []types.EmergencyRequest{
		{BloodType: types.OPositive, Timestamp: now.AddDate(0, 0, -1)},
		{BloodType: types.OPositive, Timestamp: now.AddDate(0, 0, -6)},
		{BloodType: types.OPositive, Timestamp: now.AddDate(0, 0, -10)}, // outside window
		{BloodType: types.ANegative, Timestamp: now},
	}

	counts := prediction.CountRecentByType(emergencies, 7, now)
	assert.Equal(t, 2, counts[types.OPositive])
	assert.Equal(t, 1, counts[types.ANegative])
}

func TestDemandWeight(t *testing.T) {
	assert.Equal(t, 1.5, prediction.DemandWeight(types.OPositive))
	assert.Equal(t, 1.5, prediction.DemandWeight(types.ONegative))
	assert.Equal(t, 1.0, prediction.DemandWeight("C+"), "unknown types use a neutral weight")
}
