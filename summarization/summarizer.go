package summarization

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"raksetu/types"
)

// GenerateShortageDigest asks OpenAI for a short human-readable summary of
// the current shortage picture for the dashboard header. Callers treat a
// failure as "no digest" — the assessments themselves are always served.
func GenerateShortageDigest(ctx context.Context, assessments []types.ShortageAssessment, client *openai.Client) (string, error) {
	if len(assessments) == 0 {
		return "", fmt.Errorf("no assessments to summarize")
	}

	var lines []string
	for _, a := range assessments {
		lines = append(lines, fmt.Sprintf("%s: %d units across %d banks, %.1f requests/day, severity %s, ~%d days to shortage",
			a.BloodType, a.CurrentUnits, a.BanksWithStock, a.DemandRate, a.Severity, a.DaysUntilShortage))
	}

	prompt := fmt.Sprintf("Summarize the following blood supply situation for a donation dashboard. Highlight the types most at risk and what donors should do. Provide a concise summary (2-3 sentences maximum):\n\n---\n%s\n---\n\nSummary:", strings.Join(lines, "\n"))

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes blood bank supply levels for donors concisely.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)

	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
