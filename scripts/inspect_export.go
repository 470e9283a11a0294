package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/groupchat-wrapped/internal/config"
	"github.com/groupchat-wrapped/internal/ingest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prints what the loader makes of an export without analyzing it.
func main() {
	// Parse command-line flags
	exportPath := flag.String("file", "", "Path to an export file or directory (required)")
	sample := flag.Int("n", 10, "Number of messages to print from the start and the end")
	flag.Parse()

	if *exportPath == "" {
		fmt.Println("Usage: go run scripts/inspect_export.go -file=result.json")
		fmt.Println("       go run scripts/inspect_export.go -file=inbox/ekipa_123 -n=5")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load timezone")
	}

	conv, err := ingest.Load(*exportPath, loc)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load export")
	}

	logger.Info().
		Str("title", conv.Title).
		Strs("participants", conv.Participants).
		Int("messages", len(conv.Messages)).
		Time("first", conv.Messages[0].Timestamp).
		Time("last", conv.Messages[len(conv.Messages)-1].Timestamp).
		Msg("Export loaded")

	types := make(map[string]int)
	reactions := 0
	for _, msg := range conv.Messages {
		types[string(msg.Type)]++
		reactions += len(msg.Reactions)
	}
	logger.Info().Interface("types", types).Int("reactions", reactions).Msg("Message breakdown")

	n := min(*sample, len(conv.Messages))
	for i, msg := range conv.Messages[:n] {
		printMessage(logger, i, msg.Sender, string(msg.Type), msg.Content, msg.Timestamp)
	}
	if len(conv.Messages) > 2*n {
		logger.Info().Msgf("... %d messages skipped ...", len(conv.Messages)-2*n)
	}
	start := max(n, len(conv.Messages)-n)
	for i := start; i < len(conv.Messages); i++ {
		msg := conv.Messages[i]
		printMessage(logger, i, msg.Sender, string(msg.Type), msg.Content, msg.Timestamp)
	}
}

func printMessage(logger zerolog.Logger, idx int, sender, kind, content string, at time.Time) {
	logger.Info().
		Int("idx", idx).
		Str("sender", sender).
		Str("type", kind).
		Str("date", at.Format("2006-01-02 15:04")).
		Str("text", truncate(content, 80)).
		Msg("Message")
}

// truncate shortens s to at most limit runes
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
