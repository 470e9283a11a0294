// Package llm narrates an analysis result with Gemini.
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Client represents a Gemini narration client
type Client struct {
	apiKey      string
	model       string
	timeout     time.Duration
	backoff     time.Duration // First retry delay, doubled on every retry
	logger      zerolog.Logger
	genaiClient *genai.Client
	mu          sync.Mutex

	// generate is the single-attempt call, replaced in tests
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewClient creates a new Gemini narration client
func NewClient(apiKey, model string, timeout int, logger zerolog.Logger) *Client {
	c := &Client{
		apiKey:      apiKey,
		model:       model,
		timeout:     time.Duration(timeout) * time.Second,
		backoff:     time.Second,
		logger:      logger.With().Str("component", "llm").Logger(),
		genaiClient: nil, // Will be created on first use
	}
	c.generate = c.generateContent
	return c
}

// getClient returns or creates a genai client (thread-safe)
func (c *Client) getClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c.genaiClient = client
	c.logger.Info().Msg("Gemini client created and cached")
	return c.genaiClient, nil
}

// Close closes the client and releases resources
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		err := c.genaiClient.Close()
		c.genaiClient = nil
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to close Gemini client")
			return err
		}
		c.logger.Info().Msg("Gemini client closed")
	}
	return nil
}

// Narrate writes a short intro for the wrapped of result
func (c *Client) Narrate(ctx context.Context, result *models.AnalysisResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("failed to narrate: nil result")
	}

	startTime := time.Now()

	// Create context with timeout
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.generateWithRetry(ctx, BuildPrompt(result))
	if err != nil {
		return "", err
	}

	text = truncate(strings.TrimSpace(text), MaxNarrationLength)

	c.logger.Info().
		Str("title", result.ConversationTitle).
		Str("model", c.model).
		Int("narration_length", len([]rune(text))).
		Dur("duration", time.Since(startTime)).
		Msg("Narration generated successfully")

	return text, nil
}

// generateWithRetry attempts to generate the narration with retry logic
func (c *Client) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastError error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.backoff * time.Duration(1<<uint(attempt-1))
			c.logger.Warn().
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Msg("Retrying narration request")

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("narration cancelled: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		text, err := c.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastError = err
		c.logger.Error().
			Err(err).
			Int("attempt", attempt+1).
			Str("model", c.model).
			Msg("Narration request failed")
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries+1, lastError)
}

// generateContent makes the actual API call to Gemini
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	// Get or create Gemini client (reused across requests)
	client, err := c.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get genai client: %w", err)
	}

	model := client.GenerativeModel(c.model)
	model.SetTemperature(0.9)
	model.SetMaxOutputTokens(600)

	c.logger.Debug().
		Str("model", c.model).
		Int("prompt_length", len([]rune(prompt))).
		Msg("Sending narration request")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates from LLM")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in response")
	}

	var responseText strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	if responseText.Len() == 0 {
		return "", fmt.Errorf("empty narration in response")
	}
	return responseText.String(), nil
}

// BuildPrompt renders the narration prompt for result
func BuildPrompt(result *models.AnalysisResult) string {
	stats := fmt.Sprintf("- wiadomości: %d\n- uczestnicy: %d\n- okres: %s - %s",
		result.TotalMessages,
		result.TotalParticipants,
		result.DateRange.Start.Format("02.01.2006"),
		result.DateRange.End.Format("02.01.2006"),
	)

	var winners strings.Builder
	for _, cat := range result.Categories {
		if cat.Winner == "" {
			continue
		}
		fmt.Fprintf(&winners, "- %s: %s", cat.Title, cat.Winner)
		if cat.ExtraInfo != "" {
			fmt.Fprintf(&winners, " (%s)", strings.ReplaceAll(cat.ExtraInfo, "\n", ", "))
		}
		winners.WriteByte('\n')
	}

	return fmt.Sprintf(NarrationPromptTemplate, result.ConversationTitle, stats, strings.TrimRight(winners.String(), "\n"))
}

// truncate cuts text to max runes, marking the cut
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	suffix := []rune(TruncationSuffix)
	return string(runes[:max-len(suffix)]) + TruncationSuffix
}
