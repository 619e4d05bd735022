package types

import "time"

// BloodBank is a registered bank with its current per-type inventory.
type BloodBank struct {
	ID               string            `firestore:"-" json:"id"`
	Name             string            `firestore:"name" json:"name"`
	Address          string            `firestore:"address" json:"address"`
	FormattedAddress string            `firestore:"formattedAddress" json:"formattedAddress"`
	Latitude         float64           `firestore:"latitude" json:"latitude"`
	Longitude        float64           `firestore:"longitude" json:"longitude"`
	Geocoded         bool              `firestore:"geocoded" json:"geocoded"`
	ContactPhone     string            `firestore:"contactPhone" json:"contactPhone"`
	Inventory        map[BloodType]int `firestore:"inventory" json:"inventory"`
	UpdatedAt        time.Time         `firestore:"updatedAt" json:"updatedAt"`
}

// UnitsOf returns the bank's stock for a blood type, treating negative
// counts from bad writes as zero.
func (b BloodBank) UnitsOf(bt BloodType) int {
	n := b.Inventory[bt]
	if n < 0 {
		return 0
	}
	return n
}
