package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"printit-bot/internal/orders"
	"printit-bot/internal/pricing"
	"printit-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleNewOrder(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	state := UserState{
		Step:     StepFileName,
		Username: senderName(msg.From),
		Options:  pricing.DefaultOptions(),
	}
	if err := b.state.Save(ctx, chatID, state); err != nil {
		b.logger.Error("Failed to start order",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	reply := tgbotapi.NewMessage(chatID, "📁 What is the file name? (for example Thesis.pdf)")
	reply.ReplyMarkup = removeKeyboard()
	b.sendMessage(reply)
}

func (b *Bot) handleFileName(ctx context.Context, chatID int64, text string) {
	name, err := ValidateFileName(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	if !b.advance(ctx, chatID, func(s *UserState) {
		s.Options.FileName = name
		s.Step = StepPages
	}) {
		return
	}
	b.sendText(chatID, "📄 How many pages?")
}

func (b *Bot) handlePages(ctx context.Context, chatID int64, text string) {
	n, err := ValidateCount(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	if !b.advance(ctx, chatID, func(s *UserState) {
		s.Options.Pages = n
		s.Step = StepCopies
	}) {
		return
	}
	b.sendText(chatID, "🔢 How many copies?")
}

func (b *Bot) handleCopies(ctx context.Context, chatID int64, text string) {
	n, err := ValidateCount(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	if !b.advance(ctx, chatID, func(s *UserState) {
		s.Options.Copies = n
		s.Step = StepPreset
	}) {
		return
	}

	reply := tgbotapi.NewMessage(chatID, "🎨 Pick a preset or set the options yourself:")
	reply.ReplyMarkup = b.createPresetKeyboard()
	b.sendMessage(reply)
}

func (b *Bot) handlePreset(ctx context.Context, chatID int64, text string) {
	if text == btnCustom {
		if !b.advance(ctx, chatID, func(s *UserState) { s.Step = StepCustom }) {
			return
		}
		reply := tgbotapi.NewMessage(chatID,
			"⚙️ Send options as key=value, for example:\n"+
				"color=bw sides=one quality=high paper=premium binding=spiral finishing=laminate\n\n"+
				"Send \"done\" to keep the current options.")
		reply.ReplyMarkup = removeKeyboard()
		b.sendMessage(reply)
		return
	}

	name, ok := presetButtons[text]
	if !ok {
		name = text
	}

	var applied bool
	if !b.advance(ctx, chatID, func(s *UserState) {
		s.Options, applied = pricing.ApplyPreset(s.Options, name)
		if applied {
			s.Step = StepDelivery
		}
	}) {
		return
	}
	if !applied {
		b.sendError(chatID, "Please choose one of the buttons")
		return
	}
	b.askDelivery(chatID)
}

// handleCustomOptions merges key=value pairs into the order until the
// user sends "done".
func (b *Bot) handleCustomOptions(ctx context.Context, chatID int64, text string) {
	if strings.EqualFold(text, "done") {
		if !b.advance(ctx, chatID, func(s *UserState) { s.Step = StepDelivery }) {
			return
		}
		b.askDelivery(chatID)
		return
	}

	values, rest := ParseKeyValues(text)
	if len(values) == 0 {
		b.sendError(chatID, fmt.Sprintf("Could not read %q, use key=value", strings.Join(rest, " ")))
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

	opts, err := b.orders.ParseOptions(mergeOptions(state.Options, values))
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}
	state.Options = opts
	if err := b.state.Save(ctx, chatID, state); err != nil {
		b.logger.Error("Failed to save user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	b.sendText(chatID, FormatOptions(opts)+"\n\nSend more options or \"done\".")
}

func (b *Bot) askDelivery(chatID int64) {
	reply := tgbotapi.NewMessage(chatID, "🚚 Pickup or delivery?")
	reply.ReplyMarkup = b.createDeliveryKeyboard()
	b.sendMessage(reply)
}

func (b *Bot) handleDelivery(ctx context.Context, chatID int64, text string) {
	var delivery pricing.Delivery
	switch text {
	case btnPickup:
		delivery = pricing.DeliveryPickup
	case btnDelivery:
		delivery = pricing.DeliveryDelivery
	default:
		b.sendError(chatID, "Please choose pickup or delivery")
		return
	}

	next := StepPayment
	if delivery == pricing.DeliveryDelivery {
		next = StepAddress
	}
	if !b.advance(ctx, chatID, func(s *UserState) {
		s.Options.Delivery = delivery
		s.Address = ""
		s.Step = next
	}) {
		return
	}

	if next == StepAddress {
		reply := tgbotapi.NewMessage(chatID, "📍 Where should we deliver?")
		reply.ReplyMarkup = removeKeyboard()
		b.sendMessage(reply)
		return
	}
	b.askPayment(chatID)
}

func (b *Bot) handleAddress(ctx context.Context, chatID int64, text string) {
	addr, err := ValidateAddress(text)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	if !b.advance(ctx, chatID, func(s *UserState) {
		s.Address = addr
		s.Step = StepPayment
	}) {
		return
	}
	b.askPayment(chatID)
}

func (b *Bot) askPayment(chatID int64) {
	reply := tgbotapi.NewMessage(chatID, "💰 How will you pay?")
	reply.ReplyMarkup = b.createPaymentKeyboard()
	b.sendMessage(reply)
}

func (b *Bot) handlePayment(ctx context.Context, chatID int64, text string) {
	var method string
	switch text {
	case btnCash:
		method = storage.PaymentCash
	case btnOnline:
		method = storage.PaymentOnline
	default:
		b.sendError(chatID, "Please choose cash or online")
		return
	}

	state, err := b.state.Update(ctx, chatID, func(s *UserState) {
		s.PaymentMethod = method
		s.Step = StepConfirm
	})
	if err != nil {
		b.logger.Error("Failed to save user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return
	}

	q, err := b.orders.Quote(ctx, state.Options)
	if err != nil {
		b.logger.Error("Failed to quote",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not calculate the price")
		return
	}

	text = "🧾 Please check your order\n\n" + FormatOptions(state.Options) +
		"\n\n" + FormatQuote(q) +
		"\n\nPayment: " + method
	if state.Address != "" {
		text += "\nAddress: " + state.Address
	}

	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = b.createConfirmationKeyboard()
	b.sendMessage(reply)
}

func (b *Bot) handleConfirm(ctx context.Context, chatID int64, text string) {
	switch text {
	case btnCancel:
		b.handleCancel(ctx, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}}, "")
		return
	case btnConfirm:
	default:
		b.sendError(chatID, "Please confirm or cancel the order")
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

	job, err := b.orders.Submit(ctx, chatID, state.Options, orders.Details{
		Address:       state.Address,
		PaymentMethod: state.PaymentMethod,
		Notes:         state.Notes,
	})
	if err != nil {
		var invalid *pricing.InvalidOptionError
		switch {
		case errors.Is(err, orders.ErrRateLimited):
			b.sendError(chatID, err.Error())
		case errors.As(err, &invalid):
			b.sendError(chatID, invalid.Error())
		default:
			b.logger.Error("Failed to submit order",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
			b.sendError(chatID, "Could not place the order, please try again")
		}
		return
	}

	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Error("Failed to clear state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ Order #%d placed!\nPrice: %s\n⭐ +%s points\n\nTrack it with /history.",
		job.ID, FormatMoney(job.Price), formatPoints(job.Points)))
	reply.ReplyMarkup = removeKeyboard()
	b.sendMessage(reply)

	b.NotifyNewOrder(*job, state.Username)
}

// advance applies fn to the saved state. It reports the failure to the
// user and returns false when the state cannot be saved.
func (b *Bot) advance(ctx context.Context, chatID int64, fn func(*UserState)) bool {
	if _, err := b.state.Update(ctx, chatID, fn); err != nil {
		b.logger.Error("Failed to save user state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Something went wrong, please try again")
		return false
	}
	return true
}

// mergeOptions overlays the user's values on the current options, so
// that parsing keeps earlier choices.
func mergeOptions(opts pricing.Options, values map[string]string) map[string]string {
	raw := opts.Values()
	for k, v := range values {
		if canonical, ok := pricing.CanonicalKey(k); ok {
			raw[canonical] = v
		}
	}
	return raw
}
