// Package alert pushes high-severity fatigue alerts to an ops Telegram chat.
// The channel is strictly fire-and-forget: a failed or unconfigured push
// never affects event processing.
package alert

import (
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"safetrack/pkg/logger"
	"safetrack/pkg/models"
)

type Notifier interface {
	CriticalEvent(driverName string, event *models.VehicleEvent)
}

type telegramNotifier struct {
	bot    *tele.Bot
	chatID int64
	log    logger.ILogger
}

// NewTelegram connects the alert bot. Returns a no-op notifier when no
// token is configured.
func NewTelegram(botToken string, chatID int64, log logger.ILogger) (Notifier, error) {
	if botToken == "" || chatID == 0 {
		log.Info("telegram alerts disabled")
		return NewNoop(), nil
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  botToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	log.Info("telegram alerts enabled")
	return &telegramNotifier{bot: b, chatID: chatID, log: log}, nil
}

func (n *telegramNotifier) CriticalEvent(driverName string, event *models.VehicleEvent) {
	text := fmt.Sprintf("🚨 %s alert for %s - level %s (vehicle %s)",
		event.FatigueType, driverName, event.FatigueLevel, event.VehicleID)

	go func() {
		if _, err := n.bot.Send(tele.ChatID(n.chatID), text); err != nil {
			n.log.Warning("failed to send telegram alert", logger.Error(err))
		}
	}()
}

type noopNotifier struct{}

func NewNoop() Notifier { return noopNotifier{} }

func (noopNotifier) CriticalEvent(string, *models.VehicleEvent) {}
