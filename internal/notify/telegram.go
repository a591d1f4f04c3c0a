// Package notify pushes complaint notifications to a Telegram chat the
// wardens watch. Entirely optional: without a bot token the notifier is
// nil and nothing subscribes.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/events"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	logger.Info("telegram notifier ready", zap.String("bot", bot.Self.UserName))
	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

// Sink adapts the notifier to the event hub. Sends happen in their own
// goroutine so a slow Telegram round trip never delays a broadcast.
func (t *Telegram) Sink() events.Sink {
	return func(evt events.Event) {
		text := t.render(evt)
		if text == "" {
			return
		}
		go func() {
			msg := tgbotapi.NewMessage(t.chatID, text)
			if _, err := t.bot.Send(msg); err != nil {
				t.logger.Warn("telegram send failed", zap.Error(err))
			}
		}()
	}
}

// render formats the events the wardens care about; everything else is
// skipped.
func (t *Telegram) render(evt events.Event) string {
	c := evt.Complaint
	switch evt.Type {
	case events.TypeComplaintCreated:
		return fmt.Sprintf("New complaint [%s/%s] from %s (room %s): %s",
			c.Category, c.Priority, c.StudentName, c.StudentRoom, c.Title)
	case events.TypeComplaintAssigned:
		return fmt.Sprintf("Complaint %s assigned to %s: %s", c.ID, c.AssignedStaffName, c.Title)
	default:
		return ""
	}
}
