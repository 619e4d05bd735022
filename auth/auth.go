package auth

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
)

// authClient is a singleton Firebase Auth client instance.
var (
	authClient *fbauth.Client
	clientOnce sync.Once
)

// InitAuth initializes and returns the Firebase Auth client, reusing the same
// encoded credentials as Firestore.
func InitAuth() (*fbauth.Client, error) {
	var err error

	clientOnce.Do(func() {
		encodedCreds := os.Getenv("FIREBASE_CREDENTIALS")
		creds, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			log.Fatalf("Failed to decode Firebase credentials: %v", err)
		}

		opt := option.WithCredentialsJSON(creds)
		app, err := firebase.NewApp(context.Background(), nil, opt)
		if err != nil {
			log.Fatalf("Error initializing Firebase app: %v", err)
		}

		authClient, err = app.Auth(context.Background())
		if err != nil {
			log.Fatalf("Error getting Auth client: %v", err)
		}
	})

	return authClient, err
}

const (
	ContextUserID   = "authUserID"
	ContextUserName = "authUserName"
)

// RequireUser verifies the Bearer ID token and stores uid and display name on
// the gin context. Every write operation that records attribution sits behind
// this middleware; requests without a valid token get a 401.
func RequireUser(client *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		name := ""
		if n, ok := token.Claims["name"].(string); ok {
			name = n
		}

		c.Set(ContextUserID, token.UID)
		c.Set(ContextUserName, name)
		c.Next()
	}
}

// CurrentUser reads the authenticated identity off the gin context. The
// empty uid means the middleware did not run (or was bypassed in tests).
func CurrentUser(c *gin.Context) (uid, name string) {
	uid = c.GetString(ContextUserID)
	name = c.GetString(ContextUserName)
	return uid, name
}
