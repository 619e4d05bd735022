package types

import "time"

// DonorProfile is the subset of the users collection the core reads: identity,
// blood type, contact channel, and the fields that gate shortage notifications.
type DonorProfile struct {
	ID                   string    `firestore:"-" json:"id"`
	Name                 string    `firestore:"name" json:"name"`
	BloodType            BloodType `firestore:"bloodType" json:"bloodType"`
	Phone                string    `firestore:"phone" json:"phone"`
	NotificationsEnabled bool      `firestore:"notificationsEnabled" json:"notificationsEnabled"`
	LastDonation         time.Time `firestore:"lastDonation" json:"lastDonation"`
}
