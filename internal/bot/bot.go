package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Pash-Data/Nutricare/internal/config"
	"github.com/Pash-Data/Nutricare/internal/service"
	"github.com/Pash-Data/Nutricare/pkg/metrics"
)

// Bot polls Telegram for updates and routes them through the dialog.
type Bot struct {
	api       *tgbotapi.BotAPI
	dialog    *Dialog
	collector *metrics.Collector
	log       *zap.Logger
	timeout   int
}

// New authorizes against the Telegram API. The collector may be nil.
func New(cfg config.TelegramConfig, svc *service.PatientService, collector *metrics.Collector, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}

	log.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return &Bot{
		api:       api,
		dialog:    NewDialog(svc, log),
		collector: collector,
		log:       log,
		timeout:   cfg.PollTimeout,
	}, nil
}

// Run long-polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("telegram bot polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	var replies []Reply
	if msg.IsCommand() {
		command := msg.Command()
		if b.collector != nil {
			b.collector.BotUpdatesTotal.WithLabelValues(command).Inc()
		}
		replies = b.dialog.HandleCommand(ctx, msg.Chat.ID, command)
	} else {
		replies = b.dialog.HandleText(ctx, msg.Chat.ID, msg.Text)
	}

	for _, reply := range replies {
		b.send(msg.Chat.ID, reply)
	}
}

func (b *Bot) send(chatID int64, reply Reply) {
	var msg tgbotapi.Chattable
	if reply.Document != nil {
		msg = tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  reply.Filename,
			Bytes: reply.Document,
		})
	} else {
		msg = tgbotapi.NewMessage(chatID, reply.Text)
	}

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("failed to send telegram reply", zap.Error(err))
	}
}
