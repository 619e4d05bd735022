package coordinator

import (
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"raksetu/notify"
	"raksetu/types"
)

// Error taxonomy for the response operations. Mutations either fully succeed
// or reject with one of these; notification failures are swallowed downstream
// and never surface here.
var (
	ErrUnauthenticated  = errors.New("unauthenticated: sign in to respond")
	ErrNotFound         = errors.New("emergency not found")
	ErrAlreadyResponded = errors.New("already responded to this emergency")
)

// Store is the slice of the document store the coordinator needs. The
// Firestore-backed implementation lives in the db package; tests use a fake.
// Missing documents surface as gRPC NotFound status errors.
type Store interface {
	GetEmergency(emergencyID string) (types.EmergencyRequest, error)
	AddResponder(emergencyID, userID string) error
	RemoveResponder(emergencyID, userID string) error
	CreateResponse(rec types.ResponseRecord) (string, error)
	PendingResponses(emergencyID, userID string) ([]types.ResponseRecord, error)
	UpdateResponseStatus(responseID string, newStatus types.ResponseStatus) error
}

// Responder identifies the authenticated donor performing an operation.
type Responder struct {
	UserID string
	Name   string
	Phone  string
}

// Coordinator enforces at-most-one-active-response per (user, emergency) pair
// and keeps the audit trail of response records.
type Coordinator struct {
	store Store
	sink  notify.Sender
}

func New(store Store, sink notify.Sender) *Coordinator {
	return &Coordinator{store: store, sink: sink}
}

// HasResponded reports whether the user is in the emergency's respondedBy
// set. Fails open: a transient read error must not block a user from
// responding, at the accepted cost of allowing a duplicate under failure.
func (c *Coordinator) HasResponded(emergencyID, userID string) bool {
	e, err := c.store.GetEmergency(emergencyID)
	if err != nil {
		log.Printf("hasResponded read failed for emergency %s, failing open: %v", emergencyID, err)
		return false
	}
	return containsUser(e.RespondedBy, userID)
}

// ResponderCount returns the size of the respondedBy set, which is ground
// truth for reads; the separately incremented respondersCount can drift.
// Fails open to 0 on read error.
func (c *Coordinator) ResponderCount(emergencyID string) int {
	e, err := c.store.GetEmergency(emergencyID)
	if err != nil {
		log.Printf("responderCount read failed for emergency %s, failing open: %v", emergencyID, err)
		return 0
	}
	return len(e.RespondedBy)
}

// Respond commits a donor to an emergency: appends to the respondedBy set,
// increments the responder counter, creates a pending response record, and
// fires notifications to both parties.
//
// The duplicate check and the write are separate store round-trips, so two
// concurrent calls from the same user can both pass the check before either
// write lands. With a single writer the guarantee holds; under concurrent duplicate
// submission it is best-effort.
func (c *Coordinator) Respond(emergencyID string, user Responder) (types.ResponseRecord, error) {
	var rec types.ResponseRecord

	if user.UserID == "" {
		return rec, ErrUnauthenticated
	}

	// Checked first, before any mutation.
	if c.HasResponded(emergencyID, user.UserID) {
		return rec, ErrAlreadyResponded
	}

	e, err := c.store.GetEmergency(emergencyID)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("failed to load emergency %s: %w", emergencyID, err)
	}

	if err := c.store.AddResponder(emergencyID, user.UserID); err != nil {
		if status.Code(err) == codes.NotFound {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("failed to record responder on emergency %s: %w", emergencyID, err)
	}

	rec = types.ResponseRecord{
		UserID:             user.UserID,
		UserName:           user.Name,
		EmergencyID:        emergencyID,
		Status:             types.ResponsePending,
		BloodTypeRequested: e.BloodType,
		Hospital:           e.Hospital,
		CreatedAt:          time.Now().UTC(),
	}
	recID, err := c.store.CreateResponse(rec)
	if err != nil {
		return rec, fmt.Errorf("failed to create response record: %w", err)
	}
	rec.ID = recID

	// Fire-and-continue: a failed notification never rolls back the writes
	// above.
	notify.FireAndForget(c.sink, user.Phone,
		fmt.Sprintf("You are confirmed as a responder for %s blood at %s. Thank you!", e.BloodType, e.Hospital))
	notify.FireAndForget(c.sink, e.RequesterPhone,
		fmt.Sprintf("%s has volunteered to donate %s blood for your request at %s.", user.Name, e.BloodType, e.Hospital))

	return rec, nil
}

// Cancel withdraws a user's open response: removes them from the respondedBy
// set, decrements the counter, and transitions every matching pending record
// to cancelled. Multiple pending records for the same pair are an anomaly,
// but all of them are transitioned, not just the first.
func (c *Coordinator) Cancel(emergencyID, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := c.store.RemoveResponder(emergencyID, userID); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove responder from emergency %s: %w", emergencyID, err)
	}

	pending, err := c.store.PendingResponses(emergencyID, userID)
	if err != nil {
		return fmt.Errorf("failed to load pending responses for emergency %s: %w", emergencyID, err)
	}
	for _, rec := range pending {
		if err := c.store.UpdateResponseStatus(rec.ID, types.ResponseCancelled); err != nil {
			return fmt.Errorf("failed to cancel response %s: %w", rec.ID, err)
		}
	}

	return nil
}

// Complete marks a user's pending response records as completed after the
// donation happened.
func (c *Coordinator) Complete(emergencyID, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	pending, err := c.store.PendingResponses(emergencyID, userID)
	if err != nil {
		return fmt.Errorf("failed to load pending responses for emergency %s: %w", emergencyID, err)
	}
	if len(pending) == 0 {
		return ErrNotFound
	}
	for _, rec := range pending {
		if err := c.store.UpdateResponseStatus(rec.ID, types.ResponseCompleted); err != nil {
			return fmt.Errorf("failed to complete response %s: %w", rec.ID, err)
		}
	}

	return nil
}

func containsUser(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
