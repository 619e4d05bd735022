package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"raksetu/auth"
	"raksetu/cache"
	"raksetu/db"
	"raksetu/geo"
	"raksetu/matching"
	"raksetu/types"
)

// ActiveEmergenciesKey is the cache key for the active-emergencies listing;
// the live-subscription watcher refreshes the same entry.
const ActiveEmergenciesKey = "active-emergencies"

const (
	freshAge = 2 * time.Minute
	staleAge = 30 * time.Minute
)

// fetchActiveEmergencies is the read-through path for the listing query:
// fresh cache hit wins; a stale hit is served while a background refresh
// runs; otherwise the store is read directly.
func fetchActiveEmergencies(client *firestore.Client, store cache.Cache) ([]types.EmergencyRequest, error) {
	ctx := context.Background()

	if raw, ok := store.Get(ctx, ActiveEmergenciesKey, freshAge); ok {
		var list []types.EmergencyRequest
		if err := json.Unmarshal(raw, &list); err == nil {
			return list, nil
		}
	}

	if raw, ok := store.Get(ctx, ActiveEmergenciesKey, staleAge); ok {
		var list []types.EmergencyRequest
		if err := json.Unmarshal(raw, &list); err == nil {
			go refreshActiveEmergencies(client, store)
			return list, nil
		}
	}

	return refreshActiveEmergencies(client, store)
}

func refreshActiveEmergencies(client *firestore.Client, store cache.Cache) ([]types.EmergencyRequest, error) {
	list, err := db.GetActiveEmergencies(client)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(list); err == nil {
		if err := store.Set(context.Background(), ActiveEmergenciesKey, raw); err != nil {
			log.Printf("Warning: failed to cache active emergencies: %v", err)
		}
	}
	return list, nil
}

func invalidateEmergencies(store cache.Cache) {
	if err := store.Delete(context.Background(), ActiveEmergenciesKey); err != nil {
		log.Printf("Warning: failed to invalidate emergency cache: %v", err)
	}
}

// ListEmergencies serves the filtered, ranked emergency list for a donor.
// Query params: bloodType, search, lat, lng, maxDistance (km).
func ListEmergencies(c *gin.Context, firestoreClient *firestore.Client, store cache.Cache) {
	list, err := fetchActiveEmergencies(firestoreClient, store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load emergencies, please retry"})
		return
	}

	opts := matching.FilterOptions{
		BloodType: c.Query("bloodType"),
		Search:    c.Query("search"),
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr == nil && lngErr == nil {
		opts.HasLocation = true
		opts.Latitude = lat
		opts.Longitude = lng
		if maxDist, err := strconv.ParseFloat(c.Query("maxDistance"), 64); err == nil {
			opts.MaxDistanceKM = maxDist
		}
	}

	filtered := matching.FilterEmergencies(list, opts)
	c.JSON(http.StatusOK, gin.H{"emergencies": filtered, "count": len(filtered)})
}

type createEmergencyRequest struct {
	BloodType string  `json:"bloodType" binding:"required"`
	Urgency   string  `json:"urgency" binding:"required"`
	Units     int     `json:"units"`
	Hospital  string  `json:"hospital" binding:"required"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Phone     string  `json:"phone"`
}

// CreateEmergency registers a new emergency request. When the caller gives no
// coordinates the hospital address is forward-geocoded so the request shows
// up in distance-filtered listings.
func CreateEmergency(c *gin.Context, firestoreClient *firestore.Client, store cache.Cache) {
	uid, _ := auth.CurrentUser(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to create an emergency request"})
		return
	}

	var req createEmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !types.IsValidBloodType(types.BloodType(req.BloodType)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown blood type"})
		return
	}

	e := types.EmergencyRequest{
		BloodType:      types.BloodType(req.BloodType),
		Urgency:        types.Urgency(req.Urgency),
		Units:          req.Units,
		Hospital:       req.Hospital,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		HasCoordinates: req.Latitude != 0 || req.Longitude != 0,
		RequesterID:    uid,
		RequesterPhone: req.Phone,
	}

	if !e.HasCoordinates && e.Hospital != "" {
		results, err := geo.GeocodeAddress(e.Hospital)
		if err != nil {
			log.Printf("Failed to geocode %s: %v", e.Hospital, err)
		} else if len(results) > 0 {
			loc := results[0].Geometry.Location
			e.Latitude = loc.Lat
			e.Longitude = loc.Lng
			e.HasCoordinates = true
		}
	}

	id, err := db.CreateEmergency(firestoreClient, e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create emergency, please retry"})
		return
	}

	invalidateEmergencies(store)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
