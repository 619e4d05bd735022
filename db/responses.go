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

// CreateResponse writes a new response record (a donation in pending state)
// and returns its document ID.
func CreateResponse(client *firestore.Client, rec types.ResponseRecord) (string, error) {
	ctx := context.Background()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := client.Collection(donationsCollection).Doc(rec.ID).Set(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create response record: %w", err)
	}
	return rec.ID, nil
}

// GetPendingResponses returns all pending records for a (user, emergency)
// pair. More than one is a data-integrity anomaly, but callers transition
// every match rather than just the first.
func GetPendingResponses(client *firestore.Client, emergencyID, userID string) ([]types.ResponseRecord, error) {
	ctx := context.Background()
	var records []types.ResponseRecord

	iter := client.Collection(donationsCollection).
		Where("emergencyId", "==", emergencyID).
		Where("userId", "==", userID).
		Where("status", "==", string(types.ResponsePending)).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating response records: %w", err)
		}

		var rec types.ResponseRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("error converting document %s to ResponseRecord: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		records = append(records, rec)
	}

	return records, nil
}

// UpdateResponseStatus transitions a response record's status field.
func UpdateResponseStatus(client *firestore.Client, responseID string, newStatus types.ResponseStatus) error {
	ctx := context.Background()
	docRef := client.Collection(donationsCollection).Doc(responseID)

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "status", Value: string(newStatus)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update response %s: %w", responseID, err)
	}
	return nil
}

// GetUserResponses retrieves every response record owned by a user, newest
// first.
func GetUserResponses(client *firestore.Client, userID string) ([]types.ResponseRecord, error) {
	ctx := context.Background()
	var records []types.ResponseRecord

	iter := client.Collection(donationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating user responses: %w", err)
		}

		var rec types.ResponseRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("error converting document %s to ResponseRecord: %w", doc.Ref.ID, err)
		}
		rec.ID = doc.Ref.ID
		records = append(records, rec)
	}

	return records, nil
}
