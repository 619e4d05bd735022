package types

import "time"

type ShortageSeverity string

const (
	ShortageCritical ShortageSeverity = "critical"
	ShortageLow      ShortageSeverity = "low"
	ShortageWarning  ShortageSeverity = "warning"
	ShortageStable   ShortageSeverity = "stable"
)

// Rank orders severities by decreasing risk (critical first).
func (s ShortageSeverity) Rank() int {
	switch s {
	case ShortageCritical:
		return 0
	case ShortageLow:
		return 1
	case ShortageWarning:
		return 2
	case ShortageStable:
		return 3
	}
	return 4
}

// ShortageAssessment is the derived per-blood-type supply picture. It is
// recomputed on every analysis pass, never incrementally maintained; the
// shortages collection only holds the latest snapshot for the dashboard.
type ShortageAssessment struct {
	ID                string           `firestore:"-" json:"id"`
	BloodType         BloodType        `firestore:"bloodType" json:"bloodType"`
	CurrentUnits      int              `firestore:"currentUnits" json:"currentUnits"`
	BanksWithStock    int              `firestore:"banksWithStock" json:"banksWithStock"`
	DemandRate        float64          `firestore:"demandRate" json:"demandRate"` // raw requests/day over the analysis window
	Severity          ShortageSeverity `firestore:"severity" json:"severity"`
	DaysUntilShortage int              `firestore:"daysUntilShortage" json:"daysUntilShortage"`
	AnalyzedAt        time.Time        `firestore:"analyzedAt" json:"analyzedAt"`
}

// ShortageAlert records that donors were alerted about a blood type, used to
// keep alerting idempotent within a 24h window.
type ShortageAlert struct {
	ID              string           `firestore:"-" json:"id"`
	BloodType       BloodType        `firestore:"bloodType" json:"bloodType"`
	Severity        ShortageSeverity `firestore:"severity" json:"severity"`
	CurrentUnits    int              `firestore:"currentUnits" json:"currentUnits"`
	NotifiedDonors  int              `firestore:"notifiedDonors" json:"notifiedDonors"`
	CreatedAt       time.Time        `firestore:"createdAt" json:"createdAt"`
}

// Notification is the in-app feed document written alongside SMS dispatch.
type Notification struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	Title     string    `firestore:"title" json:"title"`
	Message   string    `firestore:"message" json:"message"`
	Read      bool      `firestore:"read" json:"read"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
