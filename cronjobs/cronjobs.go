package cronjobs

import (
	"log"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"raksetu/db"
	"raksetu/notify"
	"raksetu/processor"
)

func InitCronJobs(firestoreClient *firestore.Client, sink notify.Sender) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Shortage analysis: run every 5 minutes
	_, err := c.AddFunc("*/5 * * * *", func() {
		log.Println("\nCronJob: Shortage Analysis Running")
		if _, err := processor.RunShortageAnalysis(firestoreClient, sink); err != nil {
			log.Println("Shortage analysis failed:", err)
		}
	})
	if err != nil {
		log.Println("Error scheduling Shortage Analysis:", err)
	}

	// Geocoding backfill: run every 10 minutes at the 2 minute mark
	_, err = c.AddFunc("2-59/10 * * * *", func() {
		log.Println("\nCronJob: Bank Geocoding Backfill Running")
		banks, err := db.GetBanksNeedingGeocode(firestoreClient)
		if err != nil {
			log.Println("Error fetching banks needing geocode:", err)
			return
		}
		for _, bank := range banks {
			db.UpdateBankGeocoding(firestoreClient, bank.ID, bank.Address)
		}
	})
	if err != nil {
		log.Println("Error scheduling Geocoding Backfill:", err)
	}

	c.Start()
}
