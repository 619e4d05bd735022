package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"raksetu/types"
)

// RecentAlertExists reports whether an alert for the blood type was already
// created within the window. This is what keeps shortage alerting idempotent
// per 24h window.
func RecentAlertExists(client *firestore.Client, bloodType types.BloodType, window time.Duration) (bool, error) {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-window)

	docs, err := client.Collection(alertsCollection).
		Where("bloodType", "==", string(bloodType)).
		Where("createdAt", ">=", cutoff).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return false, fmt.Errorf("error querying recent alerts for %s: %w", bloodType, err)
	}

	return len(docs) > 0, nil
}

// CreateAlert records that donors were alerted about a blood type shortage.
func CreateAlert(client *firestore.Client, alert types.ShortageAlert) (string, error) {
	ctx := context.Background()

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}

	_, err := client.Collection(alertsCollection).Doc(alert.ID).Set(ctx, alert)
	if err != nil {
		return "", fmt.Errorf("failed to create shortage alert: %w", err)
	}
	return alert.ID, nil
}

// CreateNotification writes an in-app notification document for a user.
func CreateNotification(client *firestore.Client, n types.Notification) error {
	ctx := context.Background()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := client.Collection(notificationsCollection).Doc(n.ID).Set(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification for user %s: %w", n.UserID, err)
	}
	return nil
}
