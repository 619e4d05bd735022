package db

import (
	"cloud.google.com/go/firestore"

	"raksetu/types"
)

// EmergencyStore adapts this package's Firestore functions to the store
// interface the response coordinator works against.
type EmergencyStore struct {
	Client *firestore.Client
}

func NewEmergencyStore(client *firestore.Client) *EmergencyStore {
	return &EmergencyStore{Client: client}
}

func (s *EmergencyStore) GetEmergency(emergencyID string) (types.EmergencyRequest, error) {
	return GetEmergency(s.Client, emergencyID)
}

func (s *EmergencyStore) AddResponder(emergencyID, userID string) error {
	return AddResponder(s.Client, emergencyID, userID)
}

func (s *EmergencyStore) RemoveResponder(emergencyID, userID string) error {
	return RemoveResponder(s.Client, emergencyID, userID)
}

func (s *EmergencyStore) CreateResponse(rec types.ResponseRecord) (string, error) {
	return CreateResponse(s.Client, rec)
}

func (s *EmergencyStore) PendingResponses(emergencyID, userID string) ([]types.ResponseRecord, error) {
	return GetPendingResponses(s.Client, emergencyID, userID)
}

func (s *EmergencyStore) UpdateResponseStatus(responseID string, newStatus types.ResponseStatus) error {
	return UpdateResponseStatus(s.Client, responseID, newStatus)
}
