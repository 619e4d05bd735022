package routes

import (
	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"raksetu/auth"
	"raksetu/cache"
	"raksetu/coordinator"
	"raksetu/handlers"
	"raksetu/notify"
)

func SetupRouter(
	firestoreClient *firestore.Client,
	authClient *fbauth.Client,
	coord *coordinator.Coordinator,
	store cache.Cache,
	sink notify.Sender,
	openaiClient *openai.Client,
) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Raksetu!",
		})
	})

	// api routes
	api := r.Group("/api/raksetu")
	{
		api.GET("/emergencies", func(c *gin.Context) {
			handlers.ListEmergencies(c, firestoreClient, store)
		})
		api.GET("/emergencies/:id/responders", func(c *gin.Context) {
			handlers.GetResponderCount(c, coord)
		})
		api.GET("/shortages", func(c *gin.Context) {
			handlers.GetShortages(c, firestoreClient, openaiClient)
		})
		api.GET("/banks", func(c *gin.Context) {
			handlers.ListBanks(c, firestoreClient)
		})
	}

	// writes record attribution, so they sit behind token verification
	authed := api.Group("")
	authed.Use(auth.RequireUser(authClient))
	{
		authed.POST("/emergencies", func(c *gin.Context) {
			handlers.CreateEmergency(c, firestoreClient, store)
		})
		authed.POST("/emergencies/:id/respond", func(c *gin.Context) {
			handlers.RespondToEmergency(c, coord, firestoreClient, store)
		})
		authed.POST("/emergencies/:id/cancel", func(c *gin.Context) {
			handlers.CancelResponse(c, coord, store)
		})
		authed.POST("/emergencies/:id/complete", func(c *gin.Context) {
			handlers.CompleteResponse(c, coord)
		})
		authed.GET("/responses", func(c *gin.Context) {
			handlers.ListMyResponses(c, firestoreClient)
		})
		authed.POST("/banks", func(c *gin.Context) {
			handlers.CreateBank(c, firestoreClient)
		})
		authed.PUT("/banks/:id/inventory", func(c *gin.Context) {
			handlers.UpdateBankInventory(c, firestoreClient)
		})
		authed.POST("/shortages/analyze", func(c *gin.Context) {
			handlers.RunShortageAnalysis(c, firestoreClient, sink)
		})
	}

	return r
}
