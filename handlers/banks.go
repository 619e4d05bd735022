package handlers

import (
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"raksetu/auth"
	"raksetu/db"
	"raksetu/types"
)

type createBankRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Address      string                  `json:"address" binding:"required"`
	ContactPhone string                  `json:"contactPhone"`
	Inventory    map[types.BloodType]int `json:"inventory"`
}

// CreateBank registers a blood bank. Geocoding happens later via the
// backfill cron job, not inline.
func CreateBank(c *gin.Context, firestoreClient *firestore.Client) {
	uid, _ := auth.CurrentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to register a bank"})
		return
	}

	var req createBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := db.CreateBank(firestoreClient, types.BloodBank{
		Name:         req.Name,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
		Inventory:    req.Inventory,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register bank, please retry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListBanks serves all registered banks.
func ListBanks(c *gin.Context, firestoreClient *firestore.Client) {
	banks, err := db.GetAllBanks(firestoreClient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load banks, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

// UpdateBankInventory replaces a bank's per-type unit counts.
func UpdateBankInventory(c *gin.Context, firestoreClient *firestore.Client) {
	uid, _ := auth.CurrentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to update inventory"})
		return
	}

	var inventory map[types.BloodType]int
	if err := c.ShouldBindJSON(&inventory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.UpdateBankInventory(firestoreClient, c.Param("id"), inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inventory updated"})
}
