package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"printit-bot/internal/orders"
	"printit-bot/internal/pricing"
	"printit-bot/internal/rewards"
	"printit-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const historyLimit = 10

const helpText = `🖨 Print orders

/new - place a print order
/quote pages=10 copies=2 color=bw - price a job without ordering
/history [search] - your orders
/repeat [id] - order a past job again
/clear - delete your order history
/rewards - points and tier
/redeem - spend points on a reward
/cancel - abort the current order`

const adminHelpText = `

🔧 Admin
/orders [search] - all orders
/status <id> <status> - set order status
/pay <id> <status> - set payment status
/delete <id> - delete an order
/users - customers and order counts
/export [csv|xlsx] - download all orders
/stats - order statistics
/price [set k=v ...|reset] - view or change prices
/simulate - add sample orders
/wipe confirm - delete all orders and rewards`

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	name, username := "", ""
	if msg.From != nil {
		name = strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
		username = msg.From.UserName
	}

	user, err := b.orders.Register(ctx, chatID, name, username)
	if err != nil {
		b.logger.Error("Failed to register user",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not register you, please try again")
		return
	}

	greeting := "👋 Welcome to the print shop!"
	if user.Name != "" {
		greeting = fmt.Sprintf("👋 Welcome, %s!", user.Name)
	}
	b.sendText(chatID, greeting+"\n\n"+b.helpFor(chatID))
}

func (b *Bot) handleHelp(_ context.Context, msg *tgbotapi.Message, _ string) {
	b.sendText(msg.Chat.ID, b.helpFor(msg.Chat.ID))
}

func (b *Bot) helpFor(chatID int64) string {
	if b.orders.IsAdmin(chatID) {
		return helpText + adminHelpText
	}
	return helpText
}

func (b *Bot) handleCancel(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID
	if err := b.state.Clear(ctx, chatID); err != nil {
		b.logger.Error("Failed to clear state",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	reply := tgbotapi.NewMessage(chatID, "Order cancelled.")
	reply.ReplyMarkup = removeKeyboard()
	b.sendMessage(reply)
}

func (b *Bot) handleDefault(chatID int64) {
	b.sendText(chatID, "Send /new to place an order or /help for all commands.")
}

// handleQuote prices key=value options (or a preset=name) without
// placing an order.
func (b *Bot) handleQuote(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	values, _ := ParseKeyValues(args)
	preset := values["preset"]
	delete(values, "preset")

	opts, err := b.orders.ParseOptions(values)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}
	if preset != "" {
		var ok bool
		if opts, ok = pricing.ApplyPreset(opts, preset); !ok {
			b.sendError(chatID, fmt.Sprintf("Unknown preset %q. Try: %s",
				preset, strings.Join(pricing.PresetNames(), ", ")))
			return
		}
	}

	q, err := b.orders.Quote(ctx, opts)
	if err != nil {
		b.logger.Error("Failed to quote",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not calculate the price")
		return
	}

	b.sendText(chatID, FormatQuote(q))
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message, query string) {
	chatID := msg.Chat.ID

	jobs, err := b.orders.History(ctx, chatID, query)
	if err != nil {
		b.logger.Error("Failed to load history",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load your orders")
		return
	}
	if len(jobs) == 0 {
		if query != "" {
			b.sendText(chatID, fmt.Sprintf("No orders match %q.", query))
		} else {
			b.sendText(chatID, "You have no orders yet. Send /new to place one.")
		}
		return
	}

	b.sendText(chatID, formatJobList("📋 Your orders", jobs, FormatJobLine))
}

func (b *Bot) handleRepeat(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	if args != "" {
		b.repeatOrder(ctx, chatID, senderName(msg.From), args)
		return
	}

	jobs, err := b.orders.History(ctx, chatID, "")
	if err != nil {
		b.logger.Error("Failed to load history",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load your orders")
		return
	}
	if len(jobs) == 0 {
		b.sendText(chatID, "You have no orders to repeat.")
		return
	}
	if len(jobs) > 5 {
		jobs = jobs[:5]
	}

	reply := tgbotapi.NewMessage(chatID, "Which order should be repeated?")
	reply.ReplyMarkup = b.createRepeatKeyboard(jobs)
	b.sendMessage(reply)
}

func (b *Bot) repeatOrder(ctx context.Context, chatID int64, username, idStr string) {
	id, err := parseJobID(idStr)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	job, err := b.orders.Repeat(ctx, chatID, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		b.sendError(chatID, fmt.Sprintf("Order #%d not found", id))
		return
	case errors.Is(err, orders.ErrRateLimited):
		b.sendError(chatID, err.Error())
		return
	case err != nil:
		b.logger.Error("Failed to repeat order",
			zap.Int64("chat_id", chatID),
			zap.Int64("job_id", id),
			zap.Error(err))
		b.sendError(chatID, "Could not repeat the order")
		return
	}

	b.sendText(chatID, fmt.Sprintf("🔁 Order #%d placed again as #%d\nPrice: %s\n⭐ +%s points",
		id, job.ID, FormatMoney(job.Price), formatPoints(job.Points)))
	b.NotifyNewOrder(*job, username)
}

func (b *Bot) handleClearHistory(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	n, err := b.orders.ClearHistory(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to clear history",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not clear your history")
		return
	}

	b.sendText(chatID, fmt.Sprintf("🗑 Deleted %d orders. Your points are kept.", n))
}

func (b *Bot) handleRewards(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	summary, err := b.orders.Rewards(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to load rewards",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load your rewards")
		return
	}

	text := FormatRewards(summary)
	if summary.Points >= b.orders.RedeemCost() {
		text += fmt.Sprintf("\n\nSend /redeem to spend %s points on %s.",
			formatPoints(b.orders.RedeemCost()), rewards.DefaultReward)
	}
	b.sendText(chatID, text)
}

func (b *Bot) handleRedeem(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	out, err := b.orders.Redeem(ctx, chatID)
	if err != nil {
		var short *rewards.InsufficientPointsError
		if errors.As(err, &short) {
			b.sendError(chatID, fmt.Sprintf("You need %s points to redeem, you have %s.",
				formatPoints(short.Cost), formatPoints(short.Balance)))
			return
		}
		b.logger.Error("Failed to redeem points",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not redeem points")
		return
	}

	b.sendText(chatID, fmt.Sprintf("🎁 Redeemed: %s\nRemaining points: %s",
		out.Redemption.Name, formatPoints(out.Balance)))
}

func senderName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return u.UserName
}

func formatJobList(title string, jobs []storage.Job, line func(storage.Job) string) string {
	var sb strings.Builder
	sb.WriteString(title)
	shown := jobs
	if len(shown) > historyLimit {
		shown = shown[:historyLimit]
	}
	for _, j := range shown {
		sb.WriteString("\n")
		sb.WriteString(line(j))
	}
	if len(jobs) > len(shown) {
		fmt.Fprintf(&sb, "\n… and %d more", len(jobs)-len(shown))
	}
	return sb.String()
}
