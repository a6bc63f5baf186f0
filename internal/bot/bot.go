package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"printit-bot/internal/config"
	"printit-bot/internal/orders"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of the Telegram API the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	bot      *tgbotapi.BotAPI
	api      Sender
	logger   *zap.Logger
	state    *StateStorage
	orders   *orders.Service
	cfg      *config.Config
	mu       sync.Mutex
	handlers map[string]func(context.Context, int64, string)
	commands map[string]func(context.Context, *tgbotapi.Message, string)
}

func New(
	cfg *config.Config,
	service *orders.Service,
	states StateStore,
	logger *zap.Logger,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	botAPI.Debug = cfg.Debug

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := newBot(botAPI, cfg, service, states, logger)
	b.bot = botAPI
	return b, nil
}

func newBot(api Sender, cfg *config.Config, service *orders.Service, states StateStore, logger *zap.Logger) *Bot {
	b := &Bot{
		api:    api,
		logger: logger,
		state:  NewStateStorage(states),
		orders: service,
		cfg:    cfg,
	}
	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		StepFileName: b.handleFileName,
		StepPages:    b.handlePages,
		StepCopies:   b.handleCopies,
		StepPreset:   b.handlePreset,
		StepCustom:   b.handleCustomOptions,
		StepDelivery: b.handleDelivery,
		StepAddress:  b.handleAddress,
		StepPayment:  b.handlePayment,
		StepConfirm:  b.handleConfirm,
	}

	b.commands = map[string]func(context.Context, *tgbotapi.Message, string){
		"start":    b.handleStart,
		"help":     b.handleHelp,
		"cancel":   b.handleCancel,
		"new":      b.handleNewOrder,
		"quote":    b.handleQuote,
		"history":  b.handleHistory,
		"repeat":   b.handleRepeat,
		"clear":    b.handleClearHistory,
		"rewards":  b.handleRewards,
		"redeem":   b.handleRedeem,
		"orders":   b.handleAllOrders,
		"status":   b.handleStatusUpdate,
		"pay":      b.handlePaymentUpdate,
		"delete":   b.handleDeleteOrder,
		"users":    b.handleUsers,
		"export":   b.handleExport,
		"stats":    b.handleOrderStats,
		"price":    b.handlePrice,
		"simulate": b.handleSimulate,
		"wipe":     b.handleWipe,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	if b.bot == nil {
		return fmt.Errorf("bot API is not initialised")
	}

	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			b.bot.StopReceivingUpdates()
			return nil

		case update := <-updates:
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update. Updates are processed one at a
// time.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if update.Message != nil {
		b.processMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		if handler, ok := b.commands[msg.Command()]; ok {
			handler(ctx, msg, strings.TrimSpace(msg.CommandArguments()))
		} else {
			b.sendError(chatID, "Unknown command. Send /help for the list.")
		}
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to get user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	if handler, exists := b.handlers[state.Step]; exists {
		handler(ctx, chatID, strings.TrimSpace(msg.Text))
	} else {
		b.handleDefault(chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", data))

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	action, rest, _ := strings.Cut(data, ":")
	switch action {
	case "repeat":
		b.repeatOrder(ctx, chatID, senderName(callback.From), rest)
	case "status":
		id, status, _ := strings.Cut(rest, ":")
		b.updateStatus(ctx, chatID, id, status)
	default:
		b.logger.Warn("Unknown callback", zap.String("data", data))
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}
