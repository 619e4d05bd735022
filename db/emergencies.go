package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"raksetu/types"
)

// CreateEmergency writes a new emergency request and returns its document ID.
// The derived priority field is written here so store-level queries can use
// the combined (priority desc, timestamp desc) sort key.
func CreateEmergency(client *firestore.Client, e types.EmergencyRequest) (string, error) {
	ctx := context.Background()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Priority = e.Urgency.Priority()
	e.Status = types.EmergencyActive
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	_, err := client.Collection(emergenciesCollection).Doc(e.ID).Set(ctx, e)
	if err != nil {
		return "", fmt.Errorf("failed to create emergency: %w", err)
	}
	return e.ID, nil
}

// GetEmergency retrieves a single emergency request by its document ID.
func GetEmergency(client *firestore.Client, emergencyID string) (types.EmergencyRequest, error) {
	ctx := context.Background()
	var e types.EmergencyRequest

	docSnap, err := client.Collection(emergenciesCollection).Doc(emergencyID).Get(ctx)
	if err != nil {
		return e, err
	}

	if err := docSnap.DataTo(&e); err != nil {
		return e, fmt.Errorf("error converting document %s to EmergencyRequest: %w", emergencyID, err)
	}
	e.ID = docSnap.Ref.ID
	return e, nil
}

// GetActiveEmergencies retrieves active requests ordered by urgency priority
// descending, most recent first within the same priority.
func GetActiveEmergencies(client *firestore.Client) ([]types.EmergencyRequest, error) {
	ctx := context.Background()
	var emergencies []types.EmergencyRequest

	iter := client.Collection(emergenciesCollection).
		Where("status", "==", string(types.EmergencyActive)).
		OrderBy("priority", firestore.Desc).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating emergencies: %w", err)
		}

		var e types.EmergencyRequest
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("error converting document %s to EmergencyRequest: %w", doc.Ref.ID, err)
		}
		e.ID = doc.Ref.ID
		emergencies = append(emergencies, e)
	}

	return emergencies, nil
}

// GetEmergenciesSince retrieves requests created at or after the given
// instant, feeding the shortage predictor's demand window.
func GetEmergenciesSince(client *firestore.Client, since time.Time) ([]types.EmergencyRequest, error) {
	ctx := context.Background()
	var emergencies []types.EmergencyRequest

	iter := client.Collection(emergenciesCollection).
		Where("timestamp", ">=", since).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating recent emergencies: %w", err)
		}

		var e types.EmergencyRequest
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("error converting document %s to EmergencyRequest: %w", doc.Ref.ID, err)
		}
		e.ID = doc.Ref.ID
		emergencies = append(emergencies, e)
	}

	return emergencies, nil
}

// AddResponder appends a user to the respondedBy set and increments the
// denormalized responder counter in a single update.
func AddResponder(client *firestore.Client, emergencyID, userID string) error {
	ctx := context.Background()
	docRef := client.Collection(emergenciesCollection).Doc(emergencyID)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "respondedBy", Value: firestore.ArrayUnion(userID)},
		{Path: "respondersCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return err
	}
	return nil
}

// RemoveResponder removes a user from the respondedBy set and decrements the
// responder counter.
func RemoveResponder(client *firestore.Client, emergencyID, userID string) error {
	ctx := context.Background()
	docRef := client.Collection(emergenciesCollection).Doc(emergencyID)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "respondedBy", Value: firestore.ArrayRemove(userID)},
		{Path: "respondersCount", Value: firestore.Increment(-1)},
	})
	if err != nil {
		return err
	}
	return nil
}

// UpdateEmergencyStatus transitions the lifecycle status field (fulfil or
// cancel actions). List filtering keeps using the derived responder check.
func UpdateEmergencyStatus(client *firestore.Client, emergencyID string, newStatus types.EmergencyStatus) error {
	ctx := context.Background()
	docRef := client.Collection(emergenciesCollection).Doc(emergencyID)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "status", Value: string(newStatus)},
	})
	if err != nil {
		return fmt.Errorf("failed to update status for emergency %s: %w", emergencyID, err)
	}
	return nil
}
