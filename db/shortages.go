package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"raksetu/types"
)

// SaveAssessments saves the latest shortage snapshot to the 'shortages'
// collection using BulkWriter for efficient non-transactional writes. One
// document per blood type, keyed by the type itself, so each analysis pass
// overwrites the previous snapshot.
func SaveAssessments(client *firestore.Client, assessments []types.ShortageAssessment) error {
	if len(assessments) == 0 {
		log.Println("No assessments to save.")
		return nil
	}

	ctx := context.Background()
	bw := client.BulkWriter(ctx)
	shortagesRef := client.Collection(shortagesCollection)

	savedCount := 0
	for i := range assessments {
		assessment := assessments[i]

		docRef := shortagesRef.Doc(HashString(string(assessment.BloodType)))
		_, err := bw.Set(docRef, assessment)
		if err != nil {
			log.Printf("Error enqueueing assessment %s for save: %v", assessment.BloodType, err)
		} else {
			savedCount++
		}
	}

	if savedCount == 0 {
		log.Println("No valid assessments were enqueued for saving.")
		return nil
	}

	// NOTE: Flush sends any remaining writes and waits for them to complete.
	// It should be called before the BulkWriter goes out of scope.
	bw.Flush()

	log.Printf("BulkWriter flushed. Attempted to save %d assessments.", savedCount)
	return nil
}

// GetLatestAssessments retrieves the current shortage snapshot, worst
// severity first.
func GetLatestAssessments(client *firestore.Client) ([]types.ShortageAssessment, error) {
	ctx := context.Background()
	var assessments []types.ShortageAssessment

	iter := client.Collection(shortagesCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating shortages collection: %w", err)
		}

		var assessment types.ShortageAssessment
		if err := doc.DataTo(&assessment); err != nil {
			log.Printf("Warning: Error converting document %s to ShortageAssessment: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		assessment.ID = doc.Ref.ID
		assessments = append(assessments, assessment)
	}

	return assessments, nil
}
