package processor

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"raksetu/db"
	"raksetu/notify"
	"raksetu/prediction"
	"raksetu/types"
)

const (
	alertWindow          = 24 * time.Hour
	donationCooldownDays = 90 // donors who gave within ~3 months are not asked again
)

// RunShortageAnalysis recomputes the per-blood-type shortage picture from
// bank inventories and recent emergency demand, persists the snapshot for
// the dashboard, and triggers donor alerting for non-stable types.
func RunShortageAnalysis(client *firestore.Client, sink notify.Sender) ([]types.ShortageAssessment, error) {
	now := time.Now().UTC()

	banks, err := db.GetAllBanks(client)
	if err != nil {
		return nil, fmt.Errorf("failed to load banks for shortage analysis: %w", err)
	}

	since := now.AddDate(0, 0, -prediction.DemandWindowDays)
	recent, err := db.GetEmergenciesSince(client, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent emergencies: %w", err)
	}

	counts := prediction.CountRecentByType(recent, prediction.DemandWindowDays, now)
	assessments := prediction.Assess(banks, counts, prediction.DemandWindowDays, now)

	if err := db.SaveAssessments(client, assessments); err != nil {
		log.Printf("Warning: failed to save shortage snapshot: %v", err)
	}

	TriggerShortageAlerts(client, sink, assessments)

	return assessments, nil
}

// TriggerShortageAlerts creates an alert record for every non-stable blood
// type unless one was already created within the last 24 hours. For critical
// and low severities it additionally notifies every eligible compatible
// donor: opted in, and no donation within the cooldown.
func TriggerShortageAlerts(client *firestore.Client, sink notify.Sender, assessments []types.ShortageAssessment) {
	// Helper function to append a formatted log message.
	var logBuilder strings.Builder
	addLog := func(format string, args ...interface{}) {
		logBuilder.WriteString(fmt.Sprintf(format, args...))
		logBuilder.WriteString("\n")
	}

	cooldownCutoff := time.Now().UTC().AddDate(0, 0, -donationCooldownDays)

	for _, a := range assessments {
		if a.Severity == types.ShortageStable {
			continue
		}

		exists, err := db.RecentAlertExists(client, a.BloodType, alertWindow)
		if err != nil {
			addLog("Error checking recent alerts for %s: %v. Skipping.", a.BloodType, err)
			continue
		}
		if exists {
			addLog("Alert for %s already created within the last 24h, skipping.", a.BloodType)
			continue
		}

		notified := 0
		if a.Severity == types.ShortageCritical || a.Severity == types.ShortageLow {
			donorTypes := types.CompatibleDonors[a.BloodType]
			donors, err := db.GetNotifiableDonorsByBloodTypes(client, donorTypes)
			if err != nil {
				addLog("Error enumerating donors for %s: %v. Skipping donor notifications.", a.BloodType, err)
			} else {
				for _, donor := range donors {
					if !donor.LastDonation.IsZero() && donor.LastDonation.After(cooldownCutoff) {
						continue
					}

					message := fmt.Sprintf("Urgent: %s blood is running %s (%d units left). Your %s blood can help — please consider donating.",
						a.BloodType, a.Severity, a.CurrentUnits, donor.BloodType)

					if err := db.CreateNotification(client, types.Notification{
						UserID:  donor.ID,
						Title:   fmt.Sprintf("%s blood shortage", a.BloodType),
						Message: message,
					}); err != nil {
						addLog("Error creating notification for donor %s: %v", donor.ID, err)
						continue
					}
					notify.FireAndForget(sink, donor.Phone, message)
					notified++
				}
			}
		}

		if _, err := db.CreateAlert(client, types.ShortageAlert{
			BloodType:      a.BloodType,
			Severity:       a.Severity,
			CurrentUnits:   a.CurrentUnits,
			NotifiedDonors: notified,
		}); err != nil {
			addLog("Error creating alert record for %s: %v", a.BloodType, err)
			continue
		}

		addLog("Created %s alert for %s (%d units, %d donors notified)", a.Severity, a.BloodType, a.CurrentUnits, notified)
	}

	if logBuilder.Len() > 0 {
		log.Println(logBuilder.String())
	}
}
