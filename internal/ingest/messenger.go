package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/groupchat-wrapped/internal/models"
	"github.com/groupchat-wrapped/internal/mojibake"
)

var nameChangePhrases = []string{
	"named the group", "changed the group name",
	"nazwał grupę", "nadał grupie nazwę", "zmienił nazwę grupy",
	"zmienił(-a) nazwę grupy", "nadał(-a) grupie nazwę",
}

var photoChangePhrases = []string{
	"changed the group photo", "set the group photo",
	"removed the group photo", "zmienił zdjęcie grupy",
	"ustawił zdjęcie grupy", "usunął zdjęcie grupy",
	"zmienił(-a) zdjęcie grupy",
}

// messengerExport is one message_N.json file of a Facebook export
type messengerExport struct {
	Title        string `json:"title"`
	Participants []struct {
		Name string `json:"name"`
	} `json:"participants"`
	Messages []map[string]json.RawMessage `json:"messages"`
}

func parseMessenger(data []byte, loc *time.Location) (*models.Conversation, error) {
	var export messengerExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}

	title := defaultTitle
	if export.Title != "" {
		title = mojibake.Repair(export.Title)
	}

	conv := &models.Conversation{
		Title:        title,
		Participants: make([]string, 0, len(export.Participants)),
		Messages:     make([]models.Message, 0, len(export.Messages)),
	}
	for _, p := range export.Participants {
		name := p.Name
		if name == "" {
			name = unknownSender
		}
		conv.Participants = append(conv.Participants, mojibake.Repair(name))
	}

	for _, raw := range export.Messages {
		if msg, ok := parseMessengerMessage(raw, loc); ok {
			conv.Messages = append(conv.Messages, msg)
		}
	}

	return conv, nil
}

// parseMessengerMessage maps one raw message. Entries without text or a
// known media key are reported as not ok.
func parseMessengerMessage(raw map[string]json.RawMessage, loc *time.Location) (models.Message, bool) {
	msg := models.Message{Sender: unknownSender}

	var sender string
	if decodeField(raw, "sender_name", &sender) && sender != "" {
		msg.Sender = mojibake.Repair(sender)
	}

	var ms int64
	decodeField(raw, "timestamp_ms", &ms)
	msg.Timestamp = time.UnixMilli(ms).In(loc)

	switch {
	case has(raw, "content"):
		var content string
		decodeField(raw, "content", &content)
		msg.Content = mojibake.Repair(content)
		msg.Type = classifyContent(msg.Content)
	case has(raw, "photos"):
		var photos []json.RawMessage
		decodeField(raw, "photos", &photos)
		msg.Type = models.MessagePhoto
		msg.Content = fmt.Sprintf("[%d zdjęć]", len(photos))
	case has(raw, "videos"):
		msg.Type, msg.Content = models.MessageVideo, "[wideo]"
	case has(raw, "audio_files"):
		msg.Type, msg.Content = models.MessageAudio, "[audio]"
	case has(raw, "gifs"):
		msg.Type, msg.Content = models.MessageGIF, "[GIF]"
	case has(raw, "sticker"):
		msg.Type, msg.Content = models.MessageSticker, "[naklejka]"
	case has(raw, "share"):
		var share struct {
			Link *string `json:"link"`
		}
		decodeField(raw, "share", &share)
		msg.Type, msg.Content = models.MessageShare, "[udostępnienie]"
		if share.Link != nil {
			msg.Content = mojibake.Repair(*share.Link)
		}
	case has(raw, "call_duration"):
		var seconds int64
		decodeField(raw, "call_duration", &seconds)
		msg.Type = models.MessageCall
		msg.Content = fmt.Sprintf("[rozmowa: %ds]", seconds)
	default:
		return models.Message{}, false
	}

	// Reactions stay as exported, the analyzer repairs them
	decodeField(raw, "reactions", &msg.Reactions)

	return msg, true
}

// classifyContent tells group name and photo change notices apart from text
func classifyContent(content string) models.MessageType {
	lower := strings.ToLower(content)
	switch {
	case containsAny(lower, nameChangePhrases):
		return models.MessageNameChange
	case containsAny(lower, photoChangePhrases):
		return models.MessagePhotoChange
	default:
		return models.MessageText
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func has(raw map[string]json.RawMessage, key string) bool {
	_, ok := raw[key]
	return ok
}

// decodeField unmarshals raw[key] into v. A missing key or a value of the
// wrong shape leaves v untouched and reports false.
func decodeField(raw map[string]json.RawMessage, key string, v any) bool {
	value, ok := raw[key]
	if !ok {
		return false
	}
	return json.Unmarshal(value, v) == nil
}
