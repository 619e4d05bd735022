package handlers

import (
	"errors"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"raksetu/auth"
	"raksetu/cache"
	"raksetu/coordinator"
	"raksetu/db"
)

// RespondToEmergency commits the authenticated donor to an emergency. The
// contact phone comes from the donor profile when one exists.
func RespondToEmergency(c *gin.Context, coord *coordinator.Coordinator, firestoreClient *firestore.Client, store cache.Cache) {
	uid, name := auth.CurrentUser(c)
	emergencyID := c.Param("id")

	user := coordinator.Responder{UserID: uid, Name: name}
	if profile, err := db.GetUser(firestoreClient, uid); err == nil {
		user.Phone = profile.Phone
		if user.Name == "" {
			user.Name = profile.Name
		}
	} else {
		log.Printf("No donor profile for %s, responding without contact phone: %v", uid, err)
	}

	rec, err := coord.Respond(emergencyID, user)
	if err != nil {
		writeCoordinatorError(c, err)
		return
	}

	invalidateEmergencies(store)
	c.JSON(http.StatusCreated, gin.H{"response": rec})
}

// CancelResponse withdraws the authenticated donor's open response.
func CancelResponse(c *gin.Context, coord *coordinator.Coordinator, store cache.Cache) {
	uid, _ := auth.CurrentUser(c)
	emergencyID := c.Param("id")

	if err := coord.Cancel(emergencyID, uid); err != nil {
		writeCoordinatorError(c, err)
		return
	}

	invalidateEmergencies(store)
	c.JSON(http.StatusOK, gin.H{"message": "response cancelled"})
}

// CompleteResponse marks the donor's pending response as completed.
func CompleteResponse(c *gin.Context, coord *coordinator.Coordinator) {
	uid, _ := auth.CurrentUser(c)
	emergencyID := c.Param("id")

	if err := coord.Complete(emergencyID, uid); err != nil {
		writeCoordinatorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "response completed"})
}

// GetResponderCount serves the ground-truth responder count (respondedBy set
// size, not the denormalized counter).
func GetResponderCount(c *gin.Context, coord *coordinator.Coordinator) {
	emergencyID := c.Param("id")
	c.JSON(http.StatusOK, gin.H{"responders": coord.ResponderCount(emergencyID)})
}

// ListMyResponses serves the authenticated donor's response history, newest
// first.
func ListMyResponses(c *gin.Context, firestoreClient *firestore.Client) {
	uid, _ := auth.CurrentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to view your responses"})
		return
	}

	records, err := db.GetUserResponses(firestoreClient, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load responses, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"responses": records})
}

// writeCoordinatorError maps the coordinator's error taxonomy onto HTTP
// statuses. Anything outside the taxonomy is a transient store error the
// caller should retry.
func writeCoordinatorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, coordinator.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, coordinator.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, coordinator.ErrAlreadyResponded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Coordinator operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, please retry"})
	}
}
