package handlers

import (
	"log"
	"net/http"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"raksetu/db"
	"raksetu/notify"
	"raksetu/processor"
	"raksetu/summarization"
)

// GetShortages serves the latest shortage snapshot, worst severity first.
// ?digest=true additionally asks OpenAI for a short human-readable summary;
// digest failures are logged and the assessments served without one.
func GetShortages(c *gin.Context, firestoreClient *firestore.Client, openaiClient *openai.Client) {
	assessments, err := db.GetLatestAssessments(firestoreClient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shortages, please retry"})
		return
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].Severity.Rank() < assessments[j].Severity.Rank()
	})

	digest := ""
	if c.Query("digest") == "true" && openaiClient != nil {
		digest, err = summarization.GenerateShortageDigest(c.Request.Context(), assessments, openaiClient)
		if err != nil {
			log.Printf("Shortage digest generation failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"shortages": assessments, "digest": digest})
}

// RunShortageAnalysis triggers an immediate analysis pass outside the cron
// schedule.
func RunShortageAnalysis(c *gin.Context, firestoreClient *firestore.Client, sink notify.Sender) {
	assessments, err := processor.RunShortageAnalysis(firestoreClient, sink)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shortages": assessments})
}
