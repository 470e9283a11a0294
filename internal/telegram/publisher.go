// Package telegram shares a finished wrapped with a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// sender is the part of the bot API the publisher needs
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// markdownEscaper escapes special characters for Telegram Markdown V1
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"`", "\\`",
)

var printer = message.NewPrinter(language.English)

// Publisher posts the digest and the slide deck to one chat
type Publisher struct {
	api    sender
	chatID int64
	logger zerolog.Logger
}

// NewPublisher creates a publisher authorized with the bot token
func NewPublisher(token string, chatID int64, logger zerolog.Logger) (*Publisher, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info().
		Str("username", api.Self.UserName).
		Int64("id", api.Self.ID).
		Msg("Telegram bot authorized")

	return newPublisher(api, chatID, logger), nil
}

func newPublisher(api sender, chatID int64, logger zerolog.Logger) *Publisher {
	return &Publisher{
		api:    api,
		chatID: chatID,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

// Publish sends the digest of result followed by the HTML slides as a document
func (p *Publisher) Publish(ctx context.Context, result *models.AnalysisResult, html []byte) error {
	if result == nil {
		return fmt.Errorf("failed to publish: nil result")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish cancelled: %w", err)
	}

	if err := p.sendMessage(FormatDigest(result)); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish cancelled: %w", err)
	}

	doc := tgbotapi.NewDocument(p.chatID, tgbotapi.FileBytes{
		Name:  DocumentName(result),
		Bytes: html,
	})
	doc.Caption = "Otwórz w przeglądarce 🎉"

	if _, err := p.api.Send(doc); err != nil {
		p.logger.Error().
			Err(err).
			Int64("chat_id", p.chatID).
			Msg("Failed to send document")
		return fmt.Errorf("failed to send document: %w", err)
	}

	p.logger.Info().
		Int64("chat_id", p.chatID).
		Str("title", result.ConversationTitle).
		Int("html_bytes", len(html)).
		Msg("Wrapped published")

	return nil
}

// sendMessage sends a message to the chat
func (p *Publisher) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(p.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := p.api.Send(msg); err != nil {
		p.logger.Error().
			Err(err).
			Int64("chat_id", p.chatID).
			Msg("Failed to send message")
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// FormatDigest renders the Markdown summary message: the title, headline
// numbers and one line per category that has a winner
func FormatDigest(result *models.AnalysisResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🎉 *Wrapped %d: %s*\n", result.DateRange.End.Year(), escapeMarkdown(result.ConversationTitle))
	sb.WriteString(printer.Sprintf("%d wiadomości • %d uczestników\n", result.TotalMessages, result.TotalParticipants))
	fmt.Fprintf(&sb, "%s - %s\n",
		result.DateRange.Start.Format("02.01.2006"),
		result.DateRange.End.Format("02.01.2006"),
	)

	for _, cat := range result.Categories {
		if cat.Winner == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n%s: *%s*", escapeMarkdown(cat.Title), escapeMarkdown(cat.Winner))
	}

	return sb.String()
}

// DocumentName is the file name of the shared slide deck
func DocumentName(result *models.AnalysisResult) string {
	return fmt.Sprintf("wrapped_%d.html", result.DateRange.End.Year())
}

// escapeMarkdown escapes special characters for Telegram Markdown V1
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
