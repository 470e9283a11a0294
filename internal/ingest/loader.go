// Package ingest turns chat exports into a normalized, time-ordered
// conversation. Facebook Messenger and Telegram Desktop JSON exports are
// supported.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/groupchat-wrapped/internal/models"
)

var (
	// ErrNoFiles is returned when a directory holds no export files
	ErrNoFiles = errors.New("no message files found")
	// ErrNoMessages is returned when the export files hold no usable messages
	ErrNoMessages = errors.New("export contains no messages")
)

const (
	defaultTitle  = "Conversation"
	unknownSender = "Unknown"
	telegramFile  = "result.json"
)

// Load reads the export at path. path may be a single JSON file or a
// directory with message_*.json files (Messenger), directly or in its first
// subdirectory that has them, or a Telegram result.json. Timestamps are
// converted to loc.
func Load(path string, loc *time.Location) (*models.Conversation, error) {
	if loc == nil {
		loc = time.Local
	}

	files, err := findFiles(path)
	if err != nil {
		return nil, err
	}

	var conv *models.Conversation
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		part, err := decode(data, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}

		// Title and participants come from the first file
		if conv == nil {
			conv = part
			continue
		}
		conv.Messages = append(conv.Messages, part.Messages...)
	}

	if conv == nil || len(conv.Messages) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMessages)
	}

	sort.SliceStable(conv.Messages, func(i, j int) bool {
		return conv.Messages[i].Timestamp.Before(conv.Messages[j].Timestamp)
	})

	return conv, nil
}

// findFiles resolves path to the ordered list of export files to read
func findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	if files := exportFilesIn(path); len(files) > 0 {
		return files, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if files := exportFilesIn(filepath.Join(path, e.Name())); len(files) > 0 {
			return files, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", path, ErrNoFiles)
}

// exportFilesIn lists the sorted message_*.json files of dir, falling back
// to a Telegram result.json
func exportFilesIn(dir string) []string {
	files, _ := filepath.Glob(filepath.Join(dir, "message_*.json"))
	if len(files) > 0 {
		sort.Strings(files)
		return files
	}

	result := filepath.Join(dir, telegramFile)
	if info, err := os.Stat(result); err == nil && !info.IsDir() {
		return []string{result}
	}
	return nil
}

// exportProbe holds the top-level keys that tell the two formats apart
type exportProbe struct {
	Participants json.RawMessage `json:"participants"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
}

// decode detects the export format of data and parses it
func decode(data []byte, loc *time.Location) (*models.Conversation, error) {
	var probe exportProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	if len(probe.Participants) == 0 && (probe.Name != "" || probe.Type != "") {
		return parseTelegram(data, loc)
	}
	return parseMessenger(data, loc)
}
