// Package alerts holds the delivery channels the alert watcher pushes
// new job matches through.
package alerts

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jobsentry/jobsentry-api/internal/models"
)

type TelegramSender struct {
	api *tgbotapi.BotAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return &TelegramSender{api: api}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SendMatch pushes one match to the user's chat.
func (t *TelegramSender) SendMatch(chatID int64, match *models.JobMatch) error {
	if chatID == 0 {
		return fmt.Errorf("user has no telegram chat id")
	}

	p := match.Posting
	text := fmt.Sprintf("*%s*\n", escapeMarkdown(p.Title))
	if p.Company != "" {
		text += fmt.Sprintf("at %s\n", escapeMarkdown(p.Company))
	}
	if p.Location != "" {
		text += fmt.Sprintf("in %s\n", escapeMarkdown(p.Location))
	}
	if p.SalaryRaw != "" {
		text += escapeMarkdown(p.SalaryRaw) + "\n"
	}
	text += fmt.Sprintf("Match score: %d/100\n", match.Score)
	if len(match.MatchedKeywords) > 0 {
		text += "Matched: " + escapeMarkdown(strings.Join(match.MatchedKeywords, ", ")) + "\n"
	}
	text += fmt.Sprintf("[View posting](%s)", p.URL)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
