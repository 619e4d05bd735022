package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"raksetu/types"
)

// GetUser retrieves a donor profile by its document ID.
func GetUser(client *firestore.Client, userID string) (types.DonorProfile, error) {
	ctx := context.Background()
	var profile types.DonorProfile

	docSnap, err := client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		return profile, err
	}

	if err := docSnap.DataTo(&profile); err != nil {
		return profile, fmt.Errorf("error converting document %s to DonorProfile: %w", userID, err)
	}
	profile.ID = docSnap.Ref.ID
	return profile, nil
}

// GetNotifiableDonorsByBloodTypes returns donors whose blood type is one of
// the given types and who have notifications enabled. The recent-donation
// exclusion is applied by the caller, which knows its own cutoff.
func GetNotifiableDonorsByBloodTypes(client *firestore.Client, bloodTypes []types.BloodType) ([]types.DonorProfile, error) {
	ctx := context.Background()
	var donors []types.DonorProfile

	values := make([]interface{}, len(bloodTypes))
	for i, bt := range bloodTypes {
		values[i] = string(bt)
	}

	// at most 8 canonical types, safely under Firestore's "in" limit of 10
	iter := client.Collection(usersCollection).
		Where("bloodType", "in", values).
		Where("notificationsEnabled", "==", true).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating donors: %w", err)
		}

		var profile types.DonorProfile
		if err := doc.DataTo(&profile); err != nil {
			return nil, fmt.Errorf("error converting document %s to DonorProfile: %w", doc.Ref.ID, err)
		}
		profile.ID = doc.Ref.ID
		donors = append(donors, profile)
	}

	return donors, nil
}
