// Package analyzer computes the wrapped statistics of a group conversation.
//
// Analysis is a pure function of the message log: one forward pass builds
// the aggregates, a few per-sender scans derive history-dependent metrics,
// and a fixed registry of categories turns them into slides.
package analyzer

import (
	"errors"

	"github.com/groupchat-wrapped/internal/models"
	"github.com/rs/zerolog"
)

// ErrNoMessages is returned when the conversation has nothing to analyze
var ErrNoMessages = errors.New("conversation has no messages")

// Analyzer turns a conversation into an ordered list of category results
type Analyzer struct {
	logger zerolog.Logger
}

// New creates a new analyzer
func New(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze computes every category for conv. Messages must already be sorted
// by timestamp, oldest first. The conversation is not modified.
func (a *Analyzer) Analyze(conv *models.Conversation) (*models.AnalysisResult, error) {
	if conv == nil || len(conv.Messages) == 0 {
		return nil, ErrNoMessages
	}
	messages := conv.Messages

	a.logger.Debug().
		Str("title", conv.Title).
		Int("message_count", len(messages)).
		Msg("Starting analysis")

	s := aggregate(conv.Title, messages)

	categories := make([]models.CategoryResult, 0, len(registry))
	for _, c := range registry {
		result, ok := c.build(s)
		if !ok {
			a.logger.Debug().Str("category", c.id).Msg("Category skipped, no data")
			continue
		}
		categories = append(categories, result)
	}

	a.logger.Info().
		Str("title", conv.Title).
		Int("message_count", len(messages)).
		Int("participants", len(s.participants)).
		Int("categories", len(categories)).
		Msg("Analysis completed")

	return &models.AnalysisResult{
		ConversationTitle: conv.Title,
		TotalMessages:     len(messages),
		TotalParticipants: len(s.participants),
		DateRange: models.DateRange{
			Start: messages[0].Timestamp,
			End:   messages[len(messages)-1].Timestamp,
		},
		Categories: categories,
	}, nil
}
