// Package render turns an analysis result into a self-contained HTML slide
// deck, or into JSON for other consumers.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/template/html/v2"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

// Slide layouts
const (
	LayoutTimeline = "timeline"
	LayoutGraph    = "graph"
	LayoutSummary  = "summary"
	LayoutTopList  = "top_list"
	LayoutSingle   = "single"
)

const (
	pageTemplate    = "wrapped"
	maxSegments     = 8
	maxRows         = 5
	segmentNameMax  = 20
	minBarHeight    = 2
	displayDate     = "02.01.2006"
	displayMonthKey = "2006-01"
)

var (
	medals        = []string{"🥇", "🥈", "🥉", "4️⃣", "5️⃣"}
	segmentColors = []string{"#f093fb", "#667eea", "#4facfe", "#43e97b", "#f5576c", "#ffd700", "#ff6b6b", "#48dbfb"}
	printer       = message.NewPrinter(language.English)
)

// Renderer renders analysis results with the embedded slide templates
type Renderer struct {
	engine *html.Engine
	logger zerolog.Logger
}

// New creates a renderer and parses the embedded templates
func New(logger zerolog.Logger) (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("thousands", thousands)
	engine.AddFunc("lines", func(s string) []string {
		return strings.Split(s, "\n")
	})

	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		engine: engine,
		logger: logger.With().Str("component", "renderer").Logger(),
	}, nil
}

// Layout picks the slide layout of a category
func Layout(cat models.CategoryResult) string {
	switch {
	case cat.CategoryID == "group_identity" && len(cat.Timeline) > 0:
		return LayoutTimeline
	case len(cat.Series) > 0:
		return LayoutGraph
	case cat.CategoryID == "summary":
		return LayoutSummary
	case len(cat.Winners) > 1:
		return LayoutTopList
	default:
		return LayoutSingle
	}
}

// page is the data bound to the page template
type page struct {
	Title        string
	Year         int
	Messages     int
	Participants int
	Start        string
	End          string
	Narration    string
	Slides       []slide
}

type slide struct {
	models.CategoryResult
	Layout   string
	Rows     []row
	Segments []segment
	Bars     []bar
}

type row struct {
	Medal string
	Label string
	Value string
}

type segment struct {
	Name     string
	FullName string
	Date     string
	Days     int
	Flex     template.CSS
	Style    template.CSS
}

type bar struct {
	Label string
	Count int
	Style template.CSS
}

// Render writes the slide deck for result to w. narration, when not empty,
// becomes a slide right after the intro.
func (r *Renderer) Render(w io.Writer, result *models.AnalysisResult, narration string) error {
	if result == nil {
		return fmt.Errorf("failed to render: nil result")
	}

	data := page{
		Title:        result.ConversationTitle,
		Year:         result.DateRange.End.Year(),
		Messages:     result.TotalMessages,
		Participants: result.TotalParticipants,
		Start:        result.DateRange.Start.Format(displayDate),
		End:          result.DateRange.End.Format(displayDate),
		Narration:    narration,
		Slides:       make([]slide, 0, len(result.Categories)),
	}
	for _, cat := range result.Categories {
		data.Slides = append(data.Slides, buildSlide(cat))
	}

	if err := r.engine.Render(w, pageTemplate, data); err != nil {
		return fmt.Errorf("failed to render slides: %w", err)
	}

	r.logger.Debug().
		Str("title", result.ConversationTitle).
		Int("slides", len(data.Slides)).
		Bool("narration", narration != "").
		Msg("Slides rendered")

	return nil
}

func buildSlide(cat models.CategoryResult) slide {
	s := slide{CategoryResult: cat, Layout: Layout(cat)}

	switch s.Layout {
	case LayoutTimeline:
		entries := cat.Timeline
		if len(entries) > maxSegments {
			entries = entries[:maxSegments]
		}
		for i, e := range entries {
			name := e.Name
			if utf8.RuneCountInString(name) > segmentNameMax {
				name = string([]rune(name)[:segmentNameMax]) + "..."
			}
			s.Segments = append(s.Segments, segment{
				Name:     name,
				FullName: e.Name,
				Date:     e.Date,
				Days:     e.Days,
				Flex:     template.CSS(fmt.Sprintf("flex: %d;", e.Days)),
				Style:    template.CSS(fmt.Sprintf("flex: %d; background: %s;", e.Days, segmentColors[i%len(segmentColors)])),
			})
		}

	case LayoutGraph:
		peak := 0
		for _, p := range cat.Series {
			if p.Count > peak {
				peak = p.Count
			}
		}
		for _, p := range cat.Series {
			height := minBarHeight
			if peak > 0 && p.Count*100/peak > height {
				height = p.Count * 100 / peak
			}
			s.Bars = append(s.Bars, bar{
				Label: seriesLabel(p.Label),
				Count: p.Count,
				Style: template.CSS(fmt.Sprintf("height: %d%%;", height)),
			})
		}

	case LayoutTopList:
		winners := cat.Winners
		if len(winners) > maxRows {
			winners = winners[:maxRows]
		}
		for i, w := range winners {
			s.Rows = append(s.Rows, row{Medal: medals[i], Label: w.Label, Value: w.Value})
		}
	}

	return s
}

// seriesLabel shortens a "2006-01" month key to "01.06"
func seriesLabel(key string) string {
	t, err := time.Parse(displayMonthKey, key)
	if err != nil {
		return key
	}
	return t.Format("01.06")
}

// thousands formats n with comma separators
func thousands(n int) string {
	return printer.Sprintf("%d", n)
}

// RenderJSON writes result as indented JSON
func RenderJSON(w io.Writer, result *models.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
