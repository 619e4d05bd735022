package prediction

import (
	"math"
	"sort"
	"time"

	"raksetu/types"
)

// Fixed heuristic constants. These are intentional magic numbers from the
// original dashboard tuning; keep them as-is rather than deriving them.
const (
	CriticalThreshold = 10  // units at or below this are critical no matter the demand
	LowThreshold      = 25  // units at or below this (but above critical) are low
	WarningDays       = 3   // projected days-to-low at or below this is a warning
	DemandWindowDays  = 7   // lookback window for the demand rate
	InfiniteDays      = 999 // sentinel when weighted demand is zero
)

// demandWeights scale the raw request rate per blood type. O+ and O- carry
// the highest weight as the most commonly needed / universal types.
var demandWeights = map[types.BloodType]float64{
	types.OPositive:  1.5,
	types.ONegative:  1.5,
	types.APositive:  1.2,
	types.BPositive:  1.1,
	types.ANegative:  0.9,
	types.BNegative:  0.9,
	types.ABPositive: 0.8,
	types.ABNegative: 0.7,
}

// DemandWeight returns the fixed demand weight for a blood type (1.0 for
// anything outside the canonical eight).
func DemandWeight(bt types.BloodType) float64 {
	if w, ok := demandWeights[bt]; ok {
		return w
	}
	return 1.0
}

// Assess classifies every canonical blood type into a severity tier from the
// current bank inventories and the count of emergency requests per type within
// the lookback window. Pure function; the output is sorted critical-first.
func Assess(banks []types.BloodBank, recentRequests map[types.BloodType]int, windowDays int, now time.Time) []types.ShortageAssessment {
	if windowDays <= 0 {
		windowDays = DemandWindowDays
	}

	assessments := make([]types.ShortageAssessment, 0, len(types.AllBloodTypes))
	for _, bt := range types.AllBloodTypes {
		units := 0
		banksWithStock := 0
		for _, bank := range banks {
			n := bank.UnitsOf(bt)
			units += n
			if n > 0 {
				banksWithStock++
			}
		}

		demandRate := float64(recentRequests[bt]) / float64(windowDays)
		weighted := demandRate * DemandWeight(bt)
		severity, days := classify(units, weighted)

		assessments = append(assessments, types.ShortageAssessment{
			BloodType:         bt,
			CurrentUnits:      units,
			BanksWithStock:    banksWithStock,
			DemandRate:        demandRate,
			Severity:          severity,
			DaysUntilShortage: days,
			AnalyzedAt:        now,
		})
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].Severity.Rank() < assessments[j].Severity.Rank()
	})
	return assessments
}

// classify applies the absolute unit thresholds first, then the rate-based
// warning projection. The critical and low checks never consult demand.
func classify(units int, weightedDemand float64) (types.ShortageSeverity, int) {
	switch {
	case units <= CriticalThreshold:
		return types.ShortageCritical, daysUntil(units, CriticalThreshold, weightedDemand)
	case units <= LowThreshold:
		return types.ShortageLow, daysUntil(units, CriticalThreshold, weightedDemand)
	default:
		days := daysUntil(units, LowThreshold, weightedDemand)
		if days <= WarningDays {
			return types.ShortageWarning, days
		}
		return types.ShortageStable, days
	}
}

// daysUntil projects how many days remain until units reach the next tier's
// threshold at the weighted demand rate, floored at 0. With no recent demand
// the projection is effectively infinite.
func daysUntil(units, threshold int, weightedDemand float64) int {
	if weightedDemand <= 0 {
		return InfiniteDays
	}
	days := (float64(units) - float64(threshold)) / weightedDemand
	if days < 0 {
		return 0
	}
	return int(math.Floor(days))
}

// CountRecentByType buckets emergency requests created within the window by
// blood type, feeding the demand-rate estimate.
func CountRecentByType(emergencies []types.EmergencyRequest, windowDays int, now time.Time) map[types.BloodType]int {
	if windowDays <= 0 {
		windowDays = DemandWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	counts := make(map[types.BloodType]int)
	for _, e := range emergencies {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		counts[e.BloodType]++
	}
	return counts
}
