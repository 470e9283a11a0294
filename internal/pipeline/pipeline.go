// Package pipeline runs one wrapped end to end: load the export, analyze
// it, optionally narrate it and render the slides.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/groupchat-wrapped/internal/analyzer"
	"github.com/groupchat-wrapped/internal/ingest"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/groupchat-wrapped/internal/render"
	"github.com/rs/zerolog"
)

// Narrator writes an intro for a finished analysis
type Narrator interface {
	Narrate(ctx context.Context, result *models.AnalysisResult) (string, error)
}

// Publisher shares a finished wrapped
type Publisher interface {
	Publish(ctx context.Context, result *models.AnalysisResult, html []byte) error
}

// Output is the outcome of one run
type Output struct {
	Result    *models.AnalysisResult
	HTML      []byte
	Narration string
}

// Pipeline wires the stages of a run. Narrator may be nil.
type Pipeline struct {
	location *time.Location
	analyzer *analyzer.Analyzer
	renderer *render.Renderer
	narrator Narrator
	logger   zerolog.Logger
}

// New creates a pipeline reading timestamps into loc
func New(loc *time.Location, renderer *render.Renderer, narrator Narrator, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		location: loc,
		analyzer: analyzer.New(logger),
		renderer: renderer,
		narrator: narrator,
		logger:   logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run loads the export at path and produces the wrapped. Narration failures
// are logged and the slides are rendered without it.
func (p *Pipeline) Run(ctx context.Context, path string) (*Output, error) {
	startTime := time.Now()

	conv, err := ingest.Load(path, p.location)
	if err != nil {
		return nil, fmt.Errorf("failed to load export: %w", err)
	}

	p.logger.Info().
		Str("path", path).
		Str("title", conv.Title).
		Int("messages", len(conv.Messages)).
		Int("participants", len(conv.Participants)).
		Msg("Export loaded")

	result, err := p.analyzer.Analyze(conv)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze conversation: %w", err)
	}

	out := &Output{Result: result}

	if p.narrator != nil {
		narration, err := p.narrator.Narrate(ctx, result)
		if err != nil {
			p.logger.Warn().Err(err).Msg("Narration failed, continuing without it")
		} else {
			out.Narration = narration
		}
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, result, out.Narration); err != nil {
		return nil, fmt.Errorf("failed to render slides: %w", err)
	}
	out.HTML = buf.Bytes()

	p.logger.Info().
		Int("categories", len(result.Categories)).
		Int("html_bytes", len(out.HTML)).
		Dur("duration", time.Since(startTime)).
		Msg("Wrapped ready")

	return out, nil
}
