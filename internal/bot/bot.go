// Package bot implements the Telegram transport for the face recognizer.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/facewatch/facewatch/internal/logger"
	"github.com/facewatch/facewatch/internal/media"
	"github.com/facewatch/facewatch/internal/services"
)

// updateTimeout is the long-poll window in seconds for GetUpdates
const updateTimeout = 30

// Bot wires the Telegram update stream to the recognition services
type Bot struct {
	api         *tgbotapi.BotAPI
	downloader  *media.Downloader
	recognition *services.Recognition
	people      *services.Person
}

// New authorizes against the Telegram API and returns a bot ready to run
func New(token string, downloader *media.Downloader, recognition *services.Recognition, people *services.Person) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}

	return &Bot{
		api:         api,
		downloader:  downloader,
		recognition: recognition,
		people:      people,
	}, nil
}

// Run consumes updates until the context is canceled
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout

	updates := b.api.GetUpdatesChan(u)
	logger.Infof("Bot started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot received shutdown signal, stopping...")
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

// dispatch routes one update to its handler
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message == nil:
		// Other update kinds (edits, channel posts) are ignored
	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case len(update.Message.Photo) > 0:
		b.handlePhoto(ctx, update.Message)
	case update.Message.Document != nil:
		b.handleDocument(ctx, update.Message)
	}
}
