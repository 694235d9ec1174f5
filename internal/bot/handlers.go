package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/logger"
)

// Callback data for the /start menu buttons
const (
	callbackClearData = "clear_data"
	callbackRecognize = "recognize_person"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMenu(msg.Chat.ID)
	case "help":
		b.reply(msg.Chat.ID, msgHelp)
	case "stats":
		b.sendStats(ctx, msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) sendMenu(chatID int64) {
	menu := tgbotapi.NewMessage(chatID, msgMenu)
	menu.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear data", callbackClearData),
			tgbotapi.NewInlineKeyboardButtonData("🤖 Recognize person", callbackRecognize),
		),
	)
	b.send(menu)
}

func (b *Bot) sendStats(ctx context.Context, chatID int64) {
	stats, err := b.people.Stats(ctx)
	if err != nil {
		logger.Errorf("Failed to load stats: %v", err)
		b.reply(chatID, msgProcessingFailed)
		return
	}
	b.reply(chatID, formatStats(stats))
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Telegram requires every callback query to be answered, even when no
	// notification is shown
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warnf("Failed to answer callback query: %v", err)
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case callbackClearData:
		if err := b.people.DeleteAll(ctx); err != nil {
			logger.Errorf("Failed to clear face data: %v", err)
			b.edit(chatID, query.Message.MessageID, msgClearFailed)
			return
		}
		b.edit(chatID, query.Message.MessageID, msgCleared)
	case callbackRecognize:
		b.edit(chatID, query.Message.MessageID, msgSendPhoto)
	default:
		b.edit(chatID, query.Message.MessageID, msgUnknownAction)
	}
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	// Telegram sends several sizes of the same photo; the last is the largest
	photo := msg.Photo[len(msg.Photo)-1]
	b.recognizeFile(ctx, msg, photo.FileID)
}

func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	if !isJPEGName(msg.Document.FileName) {
		b.reply(msg.Chat.ID, msgNotJPEGName)
		return
	}
	b.recognizeFile(ctx, msg, msg.Document.FileID)
}

// recognizeFile downloads the Telegram file and runs it through the recognizer
func (b *Bot) recognizeFile(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		logger.Errorf("Failed to resolve file %s: %v", fileID, err)
		b.reply(msg.Chat.ID, msgProcessingFailed)
		return
	}

	path, cleanup, err := b.downloader.FetchJPEG(ctx, url)
	if err != nil {
		logger.Errorf("Failed to download file %s: %v", fileID, err)
		b.reply(msg.Chat.ID, downloadReply(err))
		return
	}
	defer cleanup()

	recognition, err := b.recognition.RecognizeFile(ctx, path, models.SourceBot, msg.Chat.ID)
	if err != nil {
		logger.Errorf("Recognition failed: %v", err)
		b.reply(msg.Chat.ID, recognitionErrorReply(err))
		return
	}

	b.reply(msg.Chat.ID, formatRecognition(recognition))
}

// isJPEGName reports whether the file name carries a JPEG extension
func isJPEGName(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".jpg") || strings.HasSuffix(name, ".jpeg")
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		logger.Warnf("Failed to edit message %d: %v", messageID, err)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		logger.Warnf("Failed to send message: %v", err)
	}
}
