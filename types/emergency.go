package types

import "time"

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Priority maps an urgency to its integer sort weight (Critical=4 .. Low=1).
// Unknown urgencies sort last.
func (u Urgency) Priority() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	}
	return 0
}

type EmergencyStatus string

const (
	EmergencyActive    EmergencyStatus = "active"
	EmergencyFulfilled EmergencyStatus = "fulfilled"
	EmergencyCancelled EmergencyStatus = "cancelled"
)

type EmergencyRequest struct {
	ID        string          `firestore:"-" json:"id"`
	BloodType BloodType       `firestore:"bloodType" json:"bloodType"`
	Urgency   Urgency         `firestore:"urgency" json:"urgency"`
	Priority  int             `firestore:"priority" json:"priority"` // derived from Urgency at write time, used for the store-level sort key
	Units     int             `firestore:"units" json:"units"`
	Hospital  string          `firestore:"hospital" json:"hospital"`
	Location  string          `firestore:"location" json:"location"`
	Latitude  float64         `firestore:"latitude" json:"latitude"`
	Longitude float64         `firestore:"longitude" json:"longitude"`
	// HasCoordinates distinguishes a real (0,0) from "no coordinates given";
	// items without coordinates cannot be distance-filtered.
	HasCoordinates bool            `firestore:"hasCoordinates" json:"hasCoordinates"`
	Status         EmergencyStatus `firestore:"status" json:"status"`
	RespondedBy    []string        `firestore:"respondedBy" json:"respondedBy"`
	// RespondersCount mirrors len(RespondedBy) but is maintained by a separate
	// increment and can drift. len(RespondedBy) is ground truth for reads.
	RespondersCount int       `firestore:"respondersCount" json:"respondersCount"`
	RequesterID     string    `firestore:"requesterId" json:"requesterId"`
	RequesterPhone  string    `firestore:"requesterPhone" json:"requesterPhone"`
	Timestamp       time.Time `firestore:"timestamp" json:"timestamp"`

	// Display enrichment, attached by the matching pipeline. Not persisted.
	IsRare             bool    `firestore:"-" json:"isRare"`
	CalculatedDistance float64 `firestore:"-" json:"calculatedDistance"`
}

// EffectiveUnits defaults missing/non-positive units to 1, matching how the
// listing pipeline parses schemaless documents.
func (e EmergencyRequest) EffectiveUnits() int {
	if e.Units <= 0 {
		return 1
	}
	return e.Units
}

// IsFulfilledByResponders is the derived fulfillment signal used for list
// filtering. It is independent of the Status field.
func (e EmergencyRequest) IsFulfilledByResponders() bool {
	count := e.RespondersCount
	if count < 0 {
		count = 0
	}
	return count >= e.EffectiveUnits()
}

type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseCompleted ResponseStatus = "completed"
	ResponseCancelled ResponseStatus = "cancelled"
)

// ResponseRecord is the audit trail of a donor committing to an emergency.
// Stored in the donations collection; at most one non-cancelled record should
// exist per (userId, emergencyId) pair.
type ResponseRecord struct {
	ID                 string         `firestore:"-" json:"id"`
	UserID             string         `firestore:"userId" json:"userId"`
	UserName           string         `firestore:"userName" json:"userName"`
	EmergencyID        string         `firestore:"emergencyId" json:"emergencyId"`
	Status             ResponseStatus `firestore:"status" json:"status"`
	BloodTypeRequested BloodType      `firestore:"bloodTypeRequested" json:"bloodTypeRequested"`
	Hospital           string         `firestore:"hospital" json:"hospital"`
	CreatedAt          time.Time      `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time      `firestore:"updatedAt" json:"updatedAt"`
}
