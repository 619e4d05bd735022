package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// Sender is the one-operation notification sink. Failures from a Sender are
// never fatal to the operation that triggered them; callers go through
// FireAndForget so they get logged and swallowed.
type Sender interface {
	Send(to, message string) error
}

// SMSGateway posts to the configured SMS/WhatsApp gateway endpoint.
type SMSGateway struct {
	client *http.Client
}

func NewSMSGateway() *SMSGateway {
	return &SMSGateway{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *SMSGateway) Send(to, message string) error {
	gatewayURL := os.Getenv("SMS_GATEWAY_URL")
	if gatewayURL == "" {
		return fmt.Errorf("SMS_GATEWAY_URL environment variable not set")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, gatewayURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", os.Getenv("SMS_API_KEY"))

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// FireAndForget dispatches a notification and swallows any failure. A failed
// send must never flip a successful store mutation into a reported failure.
func FireAndForget(s Sender, to, message string) {
	if to == "" {
		return
	}
	if err := s.Send(to, message); err != nil {
		log.Printf("Notification dispatch to %s failed (non-fatal): %v", to, err)
	}
}
