package handlers

import (
	"bytes"
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx      context.Context
	Bot      *bot.Bot
	Callback *models.CallbackQuery
	Message  *models.Message
	Session  *model.ChatSession
	UserID   int64
	ChatID   int64
}

// NewHandlerContext создаёт контекст обработчика
func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) *HandlerContext {
	msg := callback.Message.Message
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:      ctx,
		Bot:      b,
		Callback: callback,
		Message:  msg,
		UserID:   callback.From.ID,
		ChatID:   chatID,
	}
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	hc.Bot.AnswerCallbackQuery(hc.Ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: hc.Callback.ID,
		Text:            text,
	})
}

// AnswerAlert отвечает на callback query всплывающим окном
func (hc *HandlerContext) AnswerAlert(text string) {
	hc.Bot.AnswerCallbackQuery(hc.Ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: hc.Callback.ID,
		Text:            text,
		ShowAlert:       true,
	})
}

// EditMessage редактирует текстовое сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup(keyboard),
	})
	if isMessageNotModified(err) {
		return nil
	}
	return err
}

// EditCaption редактирует подпись и клавиатуру сообщения с картинкой
func (hc *HandlerContext) EditCaption(caption string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageCaption(hc.Ctx, &bot.EditMessageCaptionParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup(keyboard),
	})
	if isMessageNotModified(err) {
		return nil
	}
	return err
}

// DeleteMessage удаляет сообщение с кнопкой
func (hc *HandlerContext) DeleteMessage() error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.DeleteMessage(hc.Ctx, &bot.DeleteMessageParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
	})
	return err
}

// IsPhoto проверяет что сообщение с кнопкой - картинка
func (hc *HandlerContext) IsPhoto() bool {
	return hc.Message != nil && len(hc.Message.Photo) > 0
}

func sendPhoto(ctx context.Context, b *bot.Bot, chatID int64, image []byte, caption string, keyboard *models.InlineKeyboardMarkup) (*models.Message, error) {
	return b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "semana.png", Data: bytes.NewReader(image)},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup(keyboard),
	})
}

// markup не даёт nil-клавиатуре превратиться в непустой интерфейс
func markup(keyboard *models.InlineKeyboardMarkup) models.ReplyMarkup {
	if keyboard == nil {
		return nil
	}
	return keyboard
}

// isMessageNotModified - Telegram отвечает ошибкой на редактирование без изменений
func isMessageNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
