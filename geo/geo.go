package geo

import "math"

const earthRadiusKM = 6371.0

// Distance calculates the great-circle distance in kilometers between two
// points (specified in decimal degrees) using the Haversine formula, rounded
// to one decimal place. Inputs are not range-checked; out-of-range values
// produce a mathematically defined but meaningless result.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180
	radLon1 := lon1 * math.Pi / 180
	radLat2 := lat2 * math.Pi / 180
	radLon2 := lon2 * math.Pi / 180

	deltaLat := radLat2 - radLat1
	deltaLon := radLon2 - radLon1

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKM*c*10) / 10
}
