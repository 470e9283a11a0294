package models

import "time"

// MessageType represents the kind of a chat message
type MessageType string

const (
	MessageText        MessageType = "text"
	MessagePhoto       MessageType = "photo"
	MessageVideo       MessageType = "video"
	MessageAudio       MessageType = "audio"
	MessageGIF         MessageType = "gif"
	MessageSticker     MessageType = "sticker"
	MessageShare       MessageType = "share"
	MessageCall        MessageType = "call"
	MessageNameChange  MessageType = "name_change"
	MessagePhotoChange MessageType = "photo_change"
)

// String returns string representation of MessageType
func (m MessageType) String() string {
	return string(m)
}

// Reaction is a single emoji reaction left on a message
type Reaction struct {
	Actor    string `json:"actor"`
	Reaction string `json:"reaction"`
}

// Message represents a normalized chat message produced by an ingest adapter
type Message struct {
	Sender    string      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"` // Wall clock in the configured timezone
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Reactions []Reaction  `json:"reactions,omitempty"`
}

// Conversation represents a full group chat export
type Conversation struct {
	Title        string    `json:"title"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"` // Sorted by timestamp, oldest first
}

// Config represents application configuration
type Config struct {
	// App settings
	Timezone    string
	LogLevel    string
	Environment string

	// Output settings
	OutputPath string
	ServeAddr  string // Empty disables the preview server
	Schedule   string // Cron expression, empty disables scheduled runs

	// Telegram settings (optional, used for sharing)
	TelegramToken  string
	TelegramChatID int64

	// Gemini API settings (optional, used for narration)
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout int
}

// PublishEnabled reports whether Telegram sharing is configured
func (c *Config) PublishEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// NarrationEnabled reports whether Gemini narration is configured
func (c *Config) NarrationEnabled() bool {
	return c.GeminiAPIKey != ""
}
