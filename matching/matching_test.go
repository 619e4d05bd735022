package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raksetu/matching"
	"raksetu/types"
)

func baseTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func sampleList() []types.EmergencyRequest {
	now := baseTime()
	return []types.EmergencyRequest{
		{
			ID: "e1", BloodType: types.OPositive, Urgency: types.UrgencyMedium, Units: 2,
			Hospital: "City General Hospital", Location: "Mumbai",
			Latitude: 19.076, Longitude: 72.8777, HasCoordinates: true,
			RespondersCount: 1, Timestamp: now.Add(-1 * time.Hour),
		},
		{
			ID: "e2", BloodType: types.ONegative, Urgency: types.UrgencyCritical, Units: 1,
			Hospital: "Apollo Clinic", Location: "Delhi",
			Latitude: 28.6139, Longitude: 77.209, HasCoordinates: true,
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID: "e3", BloodType: types.ABPositive, Urgency: types.UrgencyLow, Units: 3,
			Hospital: "Rural Health Centre", Location: "Unknown",
			Timestamp: now.Add(-3 * time.Hour),
		},
		{
			ID: "e4", BloodType: types.APositive, Urgency: types.UrgencyHigh, Units: 2,
			Hospital: "St. Mary's", Location: "Mumbai",
			Latitude: 19.21, Longitude: 72.84, HasCoordinates: true,
			RespondersCount: 2, Timestamp: now, // fulfilled: 2 of 2
		},
	}
}

func ids(list []types.EmergencyRequest) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func TestFilter_FulfillmentExclusion(t *testing.T) {
	got := matching.FilterEmergencies(sampleList(), matching.FilterOptions{})
	assert.NotContains(t, ids(got), "e4", "respondersCount >= units must be dropped")
	assert.Contains(t, ids(got), "e1", "partially covered requests stay visible")
}

func TestFilter_MissingUnitsDefaultsToOne(t *testing.T) {
	list := []types.EmergencyRequest{
		{ID: "a", BloodType: types.OPositive, RespondersCount: 1}, // units 0 -> 1, fulfilled
		{ID: "b", BloodType: types.OPositive},
	}
	got := matching.FilterEmergencies(list, matching.FilterOptions{})
	require.Equal(t, []string{"b"}, ids(got))
}

func TestFilter_BloodTypeIsLiteralMatch(t *testing.T) {
	got := matching.FilterEmergencies(sampleList(), matching.FilterOptions{BloodType: "O+"})
	require.Equal(t, []string{"e1"}, ids(got), "O- is compatible with O+ recipients but browsing filters are literal")

	got = matching.FilterEmergencies(sampleList(), matching.FilterOptions{BloodType: "All"})
	assert.Len(t, got, 3, "'All' disables the type filter")
}

func TestFilter_SearchIsTrimmedAndCaseFolded(t *testing.T) {
	got := matching.FilterEmergencies(sampleList(), matching.FilterOptions{Search: "  APOLLO  "})
	require.Equal(t, []string{"e2"}, ids(got))

	got = matching.FilterEmergencies(sampleList(), matching.FilterOptions{Search: "mumbai"})
	require.Equal(t, []string{"e1"}, ids(got))
}

func TestFilter_DistanceExcludesCoordinatelessOnlyWhenActive(t *testing.T) {
	// no distance filter: e3 (no coordinates) stays in
	got := matching.FilterEmergencies(sampleList(), matching.FilterOptions{})
	assert.Contains(t, ids(got), "e3")

	// active distance filter from Mumbai: e3 is excluded, Delhi is too far
	got = matching.FilterEmergencies(sampleList(), matching.FilterOptions{
		HasLocation: true, Latitude: 19.076, Longitude: 72.8777, MaxDistanceKM: 50,
	})
	require.Equal(t, []string{"e1"}, ids(got))
	assert.Equal(t, 0.0, got[0].CalculatedDistance)
}

func TestFilter_Enrichment(t *testing.T) {
	got := matching.FilterEmergencies(sampleList(), matching.FilterOptions{
		HasLocation: true, Latitude: 19.076, Longitude: 72.8777,
	})

	byID := map[string]types.EmergencyRequest{}
	for _, e := range got {
		byID[e.ID] = e
	}

	assert.True(t, byID["e2"].IsRare, "O- is a rare type")
	assert.False(t, byID["e1"].IsRare)
	assert.Greater(t, byID["e2"].CalculatedDistance, 1000.0, "Mumbai to Delhi is over 1000 km")
}

func TestFilter_OrderingByPriorityThenRecency(t *testing.T) {
	got := matching.FilterEmergencies(sampleList(), matching.FilterOptions{})
	require.Equal(t, []string{"e2", "e1", "e3"}, ids(got), "critical first, then medium, then low")
}

func TestFilter_TiesBrokenByMostRecent(t *testing.T) {
	now := baseTime()
	list := []types.EmergencyRequest{
		{ID: "older", BloodType: types.APositive, Urgency: types.UrgencyHigh, Units: 1, Timestamp: now.Add(-2 * time.Hour)},
		{ID: "newer", BloodType: types.APositive, Urgency: types.UrgencyHigh, Units: 1, Timestamp: now},
	}
	got := matching.FilterEmergencies(list, matching.FilterOptions{})
	require.Equal(t, []string{"newer", "older"}, ids(got))
}

func TestFilter_Idempotence(t *testing.T) {
	opts := matching.FilterOptions{
		BloodType:   "O+",
		Search:      "mumbai",
		HasLocation: true, Latitude: 19.076, Longitude: 72.8777, MaxDistanceKM: 100,
	}
	first := matching.FilterEmergencies(sampleList(), opts)
	second := matching.FilterEmergencies(sampleList(), opts)
	require.Equal(t, first, second)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	list := sampleList()
	matching.FilterEmergencies(list, matching.FilterOptions{HasLocation: true, Latitude: 19.076, Longitude: 72.8777})
	assert.Equal(t, "e1", list[0].ID)
	assert.False(t, list[1].IsRare, "enrichment must not leak into the input slice")
}
