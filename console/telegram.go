package console

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bingxgrid/logger"
)

// TelegramConsole runs the operator console over a Telegram bot. Every
// incoming message from a chat matching adminID is handed to the
// dispatcher; any other sender is ignored (authorization is a plain int64
// comparison against ADMIN_ID, no session/token auth, per SPEC_FULL.md §6).
type TelegramConsole struct {
	bot     *tgbotapi.BotAPI
	adminID int64
	disp    *Dispatcher
}

func NewTelegramConsole(token string, adminID int64, disp *Dispatcher) (*TelegramConsole, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramConsole{bot: bot, adminID: adminID, disp: disp}, nil
}

// Run reads updates until ctx is cancelled, dispatching each authorized
// command and replying in the same chat.
func (t *TelegramConsole) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			if update.Message.From == nil || update.Message.From.ID != t.adminID {
				continue
			}
			reply := t.disp.Handle(ctx, update.Message.Text)
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
			if _, err := t.bot.Send(msg); err != nil {
				logger.Warnf("telegram send failed: %v", err)
			}
		}
	}
}
