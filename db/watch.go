package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"raksetu/types"
)

// WatchActiveEmergencies subscribes to the active-emergencies query and
// invokes onChange with the full result set every time it changes. Blocks
// until ctx is cancelled; the listener is released on every exit path.
func WatchActiveEmergencies(ctx context.Context, client *firestore.Client, onChange func([]types.EmergencyRequest)) error {
	iter := client.Collection(emergenciesCollection).
		Where("status", "==", string(types.EmergencyActive)).
		Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("emergency watch failed: %w", err)
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			log.Printf("Warning: failed to read emergency snapshot: %v", err)
			continue
		}

		var list []types.EmergencyRequest
		for _, doc := range docs {
			var e types.EmergencyRequest
			if err := doc.DataTo(&e); err != nil {
				log.Printf("Warning: Error converting document %s to EmergencyRequest: %v. Skipping.", doc.Ref.ID, err)
				continue
			}
			e.ID = doc.Ref.ID
			list = append(list, e)
		}

		onChange(list)
	}
}
