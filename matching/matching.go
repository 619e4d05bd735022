package matching

import (
	"sort"
	"strings"

	"raksetu/geo"
	"raksetu/types"
)

// FilterOptions controls the emergency listing pipeline. Zero values mean
// "filter not active": BloodType empty or "All" disables the type filter,
// MaxDistanceKM <= 0 or HasLocation false disables the distance filter.
type FilterOptions struct {
	BloodType     string
	Search        string
	HasLocation   bool
	Latitude      float64
	Longitude     float64
	MaxDistanceKM float64
}

// FilterEmergencies transforms the raw emergency list into what a specific
// donor should see. Stage order matters: fulfillment exclusion, literal
// blood-type filter, free-text search, distance filter, then enrichment.
// The function is pure; the input slice is not mutated.
func FilterEmergencies(list []types.EmergencyRequest, opts FilterOptions) []types.EmergencyRequest {
	query := strings.ToLower(strings.TrimSpace(opts.Search))
	typeFilter := strings.TrimSpace(opts.BloodType)
	filterByType := typeFilter != "" && !strings.EqualFold(typeFilter, "All")
	filterByDistance := opts.HasLocation && opts.MaxDistanceKM > 0

	out := make([]types.EmergencyRequest, 0, len(list))
	for _, e := range list {
		// 1. Drop anything already covered by responders. This uses the
		// derived signal, not the status field.
		if e.IsFulfilledByResponders() {
			continue
		}

		// 2. Literal blood-type match for browsing. Compatibility-based
		// matching only happens at response time.
		if filterByType && string(e.BloodType) != typeFilter {
			continue
		}

		// 3. Case-insensitive substring search over hospital, location, type.
		if query != "" {
			if !strings.Contains(strings.ToLower(e.Hospital), query) &&
				!strings.Contains(strings.ToLower(e.Location), query) &&
				!strings.Contains(strings.ToLower(string(e.BloodType)), query) {
				continue
			}
		}

		// 4. Distance cut. Items without coordinates are only excluded while
		// a distance filter is actively applied.
		if filterByDistance {
			if !e.HasCoordinates {
				continue
			}
			dist := geo.Distance(opts.Latitude, opts.Longitude, e.Latitude, e.Longitude)
			if dist > opts.MaxDistanceKM {
				continue
			}
			e.CalculatedDistance = dist
		} else if opts.HasLocation && e.HasCoordinates {
			e.CalculatedDistance = geo.Distance(opts.Latitude, opts.Longitude, e.Latitude, e.Longitude)
		}

		// 5. Enrichment for display.
		e.IsRare = types.IsRareBloodType(e.BloodType)

		out = append(out, e)
	}

	SortByUrgency(out)
	return out
}

// SortByUrgency orders emergencies by urgency priority descending
// (Critical=4 .. Low=1), ties broken by most recent timestamp first. This is
// the same combined sort key the store-level query uses.
func SortByUrgency(list []types.EmergencyRequest) {
	sort.SliceStable(list, func(i, j int) bool {
		pi, pj := list[i].Urgency.Priority(), list[j].Urgency.Priority()
		if pi != pj {
			return pi > pj
		}
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}
