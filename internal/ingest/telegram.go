package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/groupchat-wrapped/internal/models"
)

// telegramDateLayout is the local "date" field of Telegram Desktop exports
const telegramDateLayout = "2006-01-02T15:04:05"

// telegramExport represents the Telegram Desktop JSON export format
type telegramExport struct {
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Messages []telegramMessage `json:"messages"`
}

// telegramMessage represents a message or service entry in the export
type telegramMessage struct {
	ID              int64              `json:"id"`
	Type            string             `json:"type"` // "message" or "service"
	Date            string             `json:"date"`
	DateUnixtime    string             `json:"date_unixtime"`
	From            string             `json:"from"`
	Actor           string             `json:"actor"`
	Action          string             `json:"action"`
	Title           string             `json:"title"`
	DurationSeconds int64              `json:"duration_seconds"`
	Text            interface{}        `json:"text"` // Can be string or array
	Photo           string             `json:"photo"`
	MediaType       string             `json:"media_type"`
	Reactions       []telegramReaction `json:"reactions"`
}

// telegramReaction is one reaction emoji with its count and latest actors
type telegramReaction struct {
	Type   string `json:"type"`
	Count  int    `json:"count"`
	Emoji  string `json:"emoji"`
	Recent []struct {
		From string `json:"from"`
	} `json:"recent"`
}

func parseTelegram(data []byte, loc *time.Location) (*models.Conversation, error) {
	var export telegramExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}

	title := export.Name
	if title == "" {
		title = defaultTitle
	}

	conv := &models.Conversation{
		Title:    title,
		Messages: make([]models.Message, 0, len(export.Messages)),
	}

	// The export has no member list, senders are collected in order of appearance
	seen := make(map[string]bool)
	for _, raw := range export.Messages {
		msg, ok := parseTelegramMessage(raw, loc)
		if !ok {
			continue
		}
		if !seen[msg.Sender] {
			seen[msg.Sender] = true
			conv.Participants = append(conv.Participants, msg.Sender)
		}
		conv.Messages = append(conv.Messages, msg)
	}

	return conv, nil
}

// parseTelegramMessage maps one export entry. Entries with an unreadable
// date, unsupported service actions and empty messages are reported as not ok.
func parseTelegramMessage(raw telegramMessage, loc *time.Location) (models.Message, bool) {
	ts, err := telegramTimestamp(raw, loc)
	if err != nil {
		return models.Message{}, false
	}

	msg := models.Message{Timestamp: ts}

	switch raw.Type {
	case "service":
		msg.Sender = nonEmpty(raw.Actor, unknownSender)
		switch raw.Action {
		case "edit_group_title":
			msg.Type = models.MessageNameChange
			msg.Content = fmt.Sprintf("%s named the group %s.", msg.Sender, raw.Title)
		case "edit_group_photo", "delete_group_photo":
			msg.Type = models.MessagePhotoChange
			msg.Content = fmt.Sprintf("%s changed the group photo.", msg.Sender)
		case "phone_call", "group_call":
			msg.Type = models.MessageCall
			msg.Content = fmt.Sprintf("[rozmowa: %ds]", raw.DurationSeconds)
		default:
			return models.Message{}, false
		}
		return msg, true

	case "message":
		msg.Sender = nonEmpty(raw.From, unknownSender)
	default:
		return models.Message{}, false
	}

	// Media wins over a caption, so captioned photos still count as photos
	switch {
	case raw.MediaType == "sticker":
		msg.Type, msg.Content = models.MessageSticker, "[naklejka]"
	case raw.MediaType == "animation":
		msg.Type, msg.Content = models.MessageGIF, "[GIF]"
	case raw.MediaType == "video_file" || raw.MediaType == "video_message":
		msg.Type, msg.Content = models.MessageVideo, "[wideo]"
	case raw.MediaType == "voice_message" || raw.MediaType == "audio_file":
		msg.Type, msg.Content = models.MessageAudio, "[audio]"
	case raw.Photo != "":
		msg.Type, msg.Content = models.MessagePhoto, "[1 zdjęć]"
	default:
		text := extractText(raw.Text)
		if text == "" {
			return models.Message{}, false
		}
		msg.Type, msg.Content = models.MessageText, text
	}

	msg.Reactions = telegramReactions(raw.Reactions)
	return msg, true
}

// telegramTimestamp prefers date_unixtime and falls back to the local date
func telegramTimestamp(raw telegramMessage, loc *time.Location) (time.Time, error) {
	if raw.DateUnixtime != "" {
		sec, err := strconv.ParseInt(raw.DateUnixtime, 10, 64)
		if err == nil {
			return time.Unix(sec, 0).In(loc), nil
		}
	}
	ts, err := time.ParseInLocation(telegramDateLayout, raw.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse message date: %w", err)
	}
	return ts, nil
}

// telegramReactions expands the aggregated reactions into one entry per
// reaction. Only the latest actors are exported, the rest stay anonymous.
func telegramReactions(reactions []telegramReaction) []models.Reaction {
	var out []models.Reaction
	for _, r := range reactions {
		emoji := r.Emoji
		if emoji == "" {
			emoji = "⭐"
		}
		n := 0
		for _, who := range r.Recent {
			if n == r.Count {
				break
			}
			out = append(out, models.Reaction{Actor: who.From, Reaction: emoji})
			n++
		}
		for ; n < r.Count; n++ {
			out = append(out, models.Reaction{Reaction: emoji})
		}
	}
	return out
}

// extractText extracts text from message.text field (can be string or array)
func extractText(text interface{}) string {
	switch v := text.(type) {
	case string:
		return v
	case []interface{}:
		// Text with entities - concatenate all text parts
		var sb strings.Builder
		for _, part := range v {
			if str, ok := part.(string); ok {
				sb.WriteString(str)
			} else if m, ok := part.(map[string]interface{}); ok {
				if txt, ok := m["text"].(string); ok {
					sb.WriteString(txt)
				}
			}
		}
		return sb.String()
	default:
		return ""
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
