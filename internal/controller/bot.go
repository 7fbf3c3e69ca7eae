package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/controller/handlers"
	"github.com/Freeeeeet/clinic_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_bot/internal/service"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	sessions *service.ChatSessionService,
	calendars *service.CalendarService,
	odontograms *service.OdontogramService,
	notices *service.NoticeService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний диалогов
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		sessions,
		calendars,
		odontograms,
		notices,
		stateManager,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/vincular", bot.MatchTypePrefix, c.handlers.HandleLink)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/desvincular", bot.MatchTypeExact, c.handlers.HandleUnlink)

	// Персонал
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/agenda", bot.MatchTypeExact, c.handlers.HandleAgenda)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/odontograma", bot.MatchTypePrefix, c.handlers.HandleOdontogram)

	// Пациенты
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/disponibilidad", bot.MatchTypeExact, c.handlers.HandleAvailability)

	// Текст для диалогов с состояниями
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Нажатия на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Empezar"},
		{Command: "help", Description: "❓ Ayuda"},
		{Command: "agenda", Description: "📅 Calendario de citas (personal)"},
		{Command: "odontograma", Description: "🦷 Odontograma de un paciente (personal)"},
		{Command: "disponibilidad", Description: "🗓 Solicitar cita (pacientes)"},
		{Command: "vincular", Description: "🔗 Vincular el chat a la clínica"},
		{Command: "desvincular", Description: "🚫 Olvidar la sesión"},
		{Command: "cancel", Description: "❌ Cancelar la operación"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// MessageDeleter удаляет сообщения через Bot API
type MessageDeleter struct {
	bot *bot.Bot
}

func NewMessageDeleter(b *bot.Bot) *MessageDeleter {
	return &MessageDeleter{bot: b}
}

func (d *MessageDeleter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := d.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}
