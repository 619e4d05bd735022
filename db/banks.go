package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"raksetu/geo"
	"raksetu/types"
)

// CreateBank registers a blood bank. The document ID is derived from the bank
// name so re-registering the same bank updates it in place.
func CreateBank(client *firestore.Client, bank types.BloodBank) (string, error) {
	ctx := context.Background()

	bankID := HashString(bank.Name)
	bank.UpdatedAt = time.Now().UTC()

	_, err := client.Collection(banksCollection).Doc(bankID).Set(ctx, bank, firestore.MergeAll)
	if err != nil {
		return "", fmt.Errorf("failed to create bank %s: %w", bank.Name, err)
	}
	return bankID, nil
}

// GetAllBanks retrieves every registered blood bank.
func GetAllBanks(client *firestore.Client) ([]types.BloodBank, error) {
	ctx := context.Background()
	var banks []types.BloodBank

	iter := client.Collection(banksCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating banks: %w", err)
		}

		var bank types.BloodBank
		if err := doc.DataTo(&bank); err != nil {
			log.Printf("Warning: Error converting document %s to BloodBank: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		bank.ID = doc.Ref.ID
		banks = append(banks, bank)
	}

	return banks, nil
}

// GetBanksNeedingGeocode returns banks registered with an address but no
// coordinates yet.
func GetBanksNeedingGeocode(client *firestore.Client) ([]types.BloodBank, error) {
	ctx := context.Background()
	var banks []types.BloodBank

	docs, err := client.Collection(banksCollection).
		Where("geocoded", "==", false).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		var bank types.BloodBank
		if err := doc.DataTo(&bank); err != nil {
			return nil, err
		}
		bank.ID = doc.Ref.ID
		banks = append(banks, bank)
	}

	return banks, nil
}

// UpdateBankGeocoding forward-geocodes a bank's address and stores the
// result. A bank that cannot be geocoded is still marked processed so the
// backfill job doesn't retry it forever.
func UpdateBankGeocoding(client *firestore.Client, bankID, address string) {
	results, err := geo.GeocodeAddress(address)
	if err != nil {
		log.Printf("Failed to geocode %s: %v", address, err)
		return
	}

	geoData := map[string]interface{}{
		"formattedAddress": "",
		"latitude":         0,
		"longitude":        0,
		"geocoded":         true,
	}

	if len(results) == 0 {
		log.Printf("No geocode results for %s", address)
	} else {
		loc := results[0].Geometry.Location
		geoData = map[string]interface{}{
			"formattedAddress": results[0].FormattedAddress,
			"latitude":         loc.Lat,
			"longitude":        loc.Lng,
			"geocoded":         true,
		}
	}

	ctx := context.Background()
	_, err = client.Collection(banksCollection).Doc(bankID).Set(ctx, geoData, firestore.MergeAll)
	if err != nil {
		log.Printf("Failed to update geocoding data for %s: %v", address, err)
		return
	}
	log.Printf("Successfully updated geocoding data for %s", address)
}

// UpdateBankInventory replaces a bank's per-type unit counts.
func UpdateBankInventory(client *firestore.Client, bankID string, inventory map[types.BloodType]int) error {
	ctx := context.Background()
	docRef := client.Collection(banksCollection).Doc(bankID)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "inventory", Value: inventory},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update inventory for bank %s: %w", bankID, err)
	}
	return nil
}
