package models

import "time"

// Ranked is one row of a top-N list: a label and its formatted score
type Ranked struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Point is one bar of a graph category
type Point struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimelineEntry is one segment of the group identity timeline
type TimelineEntry struct {
	Name       string    `json:"name"`
	Who        string    `json:"who"`
	Date       string    `json:"date"` // Short Polish date, e.g. "3 mar"
	Days       int       `json:"days"`
	Percentage float64   `json:"percentage"`
	Start      time.Time `json:"start"`
}

// CategoryResult is the outcome of a single category (one slide)
type CategoryResult struct {
	CategoryID string          `json:"category_id"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Icon       string          `json:"icon"`
	Winner     string          `json:"winner,omitempty"`
	Winners    []Ranked        `json:"winners,omitempty"`
	Timeline   []TimelineEntry `json:"timeline,omitempty"`
	Series     []Point         `json:"series,omitempty"`
	Value      int             `json:"value,omitempty"`
	ExtraInfo  string          `json:"extra_info,omitempty"`
	FunFact    string          `json:"fun_fact,omitempty"`
}

// DateRange is the span between the first and the last message
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AnalysisResult represents the complete analysis of a conversation
type AnalysisResult struct {
	ConversationTitle string           `json:"conversation_title"`
	TotalMessages     int              `json:"total_messages"`
	TotalParticipants int              `json:"total_participants"`
	DateRange         DateRange        `json:"date_range"`
	Categories        []CategoryResult `json:"categories"` // Presentation order
}

// Category returns the category with the given id, or nil
func (r *AnalysisResult) Category(id string) *CategoryResult {
	for i := range r.Categories {
		if r.Categories[i].CategoryID == id {
			return &r.Categories[i]
		}
	}
	return nil
}
