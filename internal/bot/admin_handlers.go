package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"printit-bot/internal/export"
	"printit-bot/internal/orders"
	"printit-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// reportAdminError answers a failed admin action. Refusals and missing
// orders are shown as is, anything else is logged.
func (b *Bot) reportAdminError(chatID int64, action string, err error) {
	switch {
	case errors.Is(err, orders.ErrForbidden):
		b.sendError(chatID, "This command is for admins only")
	case errors.Is(err, storage.ErrNotFound):
		b.sendError(chatID, "Order not found")
	default:
		b.logger.Error("Admin action failed",
			zap.Int64("chat_id", chatID),
			zap.String("action", action),
			zap.Error(err))
		b.sendError(chatID, fmt.Sprintf("Failed to %s", action))
	}
}

func (b *Bot) handleAllOrders(ctx context.Context, msg *tgbotapi.Message, query string) {
	chatID := msg.Chat.ID

	jobs, err := b.orders.AllOrders(ctx, chatID, query)
	if err != nil {
		b.reportAdminError(chatID, "list orders", err)
		return
	}
	if len(jobs) == 0 {
		b.sendText(chatID, "No orders found.")
		return
	}

	b.sendText(chatID, formatJobList(fmt.Sprintf("📋 Orders (%d)", len(jobs)), jobs, FormatAdminJobLine))
}

func (b *Bot) handleStatusUpdate(ctx context.Context, msg *tgbotapi.Message, args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.sendError(msg.Chat.ID, "Usage: /status <order id> <"+strings.Join(storage.JobStatuses, "|")+">")
		return
	}
	b.updateStatus(ctx, msg.Chat.ID, fields[0], fields[1])
}

func (b *Bot) updateStatus(ctx context.Context, chatID int64, idStr, status string) {
	id, err := parseJobID(idStr)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	st, err := b.orders.SetStatus(ctx, chatID, id, status)
	if err != nil {
		if _, ok := orders.ParseStatus(status); !ok && !errors.Is(err, orders.ErrForbidden) {
			b.sendError(chatID, "Unknown status. Use one of: "+strings.Join(storage.JobStatuses, ", "))
			return
		}
		b.reportAdminError(chatID, "update status", err)
		return
	}

	b.sendText(chatID, fmt.Sprintf("✅ Order #%d status: %s", id, st))

	job, err := b.orders.Order(ctx, chatID, id)
	if err != nil {
		b.logger.Warn("Failed to load order for notification",
			zap.Int64("job_id", id),
			zap.Error(err))
		return
	}
	if job.UserID != chatID {
		b.notifyStatusChange(*job, st)
	}
}

func (b *Bot) handlePaymentUpdate(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	fields := strings.Fields(args)
	if len(fields) != 2 {
		b.sendError(chatID, "Usage: /pay <order id> <"+strings.Join(storage.PaymentStatuses, "|")+">")
		return
	}
	id, err := parseJobID(fields[0])
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	st, err := b.orders.SetPaymentStatus(ctx, chatID, id, fields[1])
	if err != nil {
		if _, ok := orders.ParsePaymentStatus(fields[1]); !ok && !errors.Is(err, orders.ErrForbidden) {
			b.sendError(chatID, "Unknown payment status. Use one of: "+strings.Join(storage.PaymentStatuses, ", "))
			return
		}
		b.reportAdminError(chatID, "update payment status", err)
		return
	}

	b.sendText(chatID, fmt.Sprintf("💳 Order #%d payment: %s", id, st))
}

func (b *Bot) handleDeleteOrder(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	id, err := parseJobID(args)
	if err != nil {
		b.sendError(chatID, "Usage: /delete <order id>")
		return
	}
	if err := b.orders.Delete(ctx, chatID, id); err != nil {
		b.reportAdminError(chatID, "delete order", err)
		return
	}

	b.sendText(chatID, fmt.Sprintf("🗑 Order #%d deleted", id))
}

func (b *Bot) handleUsers(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	users, err := b.orders.Users(ctx, chatID)
	if err != nil {
		b.reportAdminError(chatID, "list users", err)
		return
	}
	if len(users) == 0 {
		b.sendText(chatID, "No users yet.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 Users (%d)", len(users))
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = "—"
		}
		fmt.Fprintf(&sb, "\n%d · %s · %d orders", u.UserID, name, u.Jobs)
	}
	b.sendText(chatID, sb.String())
}

func (b *Bot) handleExport(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	format, err := export.ParseFormat(args)
	if err != nil {
		b.sendError(chatID, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := b.orders.Export(ctx, chatID, &buf, format); err != nil {
		b.reportAdminError(chatID, "export orders", err)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  export.FileName(format, time.Now().Format("20060102_150405")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = "📊 All orders export"

	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send export file",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Failed to send exported file")
	}
}

func (b *Bot) handleOrderStats(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	stats, err := b.orders.Stats(ctx, chatID)
	if err != nil {
		b.reportAdminError(chatID, "load statistics", err)
		return
	}

	text := fmt.Sprintf(
		"📊 Order statistics\n\n"+
			"📌 Total orders: %d\n"+
			"💰 Revenue: %s\n"+
			"📅 Today: %d (%s)\n"+
			"📅 This week: %d (%s)\n"+
			"📅 This month: %d (%s)",
		stats.TotalOrders, FormatMoney(stats.TotalRevenue),
		stats.TodayOrders, FormatMoney(stats.TodayRevenue),
		stats.WeekOrders, FormatMoney(stats.WeekRevenue),
		stats.MonthOrders, FormatMoney(stats.MonthRevenue),
	)
	if len(stats.StatusCounts) > 0 {
		text += "\n\n📌 By status:\n" + FormatStatusCounts(stats.StatusCounts)
	}
	b.sendText(chatID, text)
}

// handlePrice shows the price list, or changes it with
// "set key=value ..." and "reset".
func (b *Bot) handlePrice(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	sub, rest, _ := strings.Cut(args, " ")
	switch strings.ToLower(sub) {
	case "", "show":
	case "set":
		values, bad := ParseKeyValues(rest)
		if len(values) == 0 || len(bad) > 0 {
			b.sendError(chatID, "Usage: /price set key=value ...")
			return
		}
		if _, err := b.orders.SetOverrides(ctx, chatID, values); err != nil {
			if errors.Is(err, orders.ErrForbidden) {
				b.reportAdminError(chatID, "update prices", err)
				return
			}
			b.sendError(chatID, err.Error())
			return
		}
	case "reset":
		if err := b.orders.ResetOverrides(ctx, chatID); err != nil {
			b.reportAdminError(chatID, "reset prices", err)
			return
		}
	default:
		b.sendError(chatID, "Usage: /price [show | set key=value ... | reset]")
		return
	}

	o, cfg, err := b.orders.Overrides(ctx, chatID)
	if err != nil {
		b.reportAdminError(chatID, "load prices", err)
		return
	}
	b.sendText(chatID, FormatPriceList(o, cfg))
}

func (b *Bot) handleSimulate(ctx context.Context, msg *tgbotapi.Message, _ string) {
	chatID := msg.Chat.ID

	jobs, err := b.orders.SimulateOrders(ctx, chatID)
	if err != nil {
		b.reportAdminError(chatID, "add sample orders", err)
		return
	}

	b.sendText(chatID, formatJobList(fmt.Sprintf("🧪 Added %d sample orders", len(jobs)), jobs, FormatJobLine))
}

func (b *Bot) handleWipe(ctx context.Context, msg *tgbotapi.Message, args string) {
	chatID := msg.Chat.ID

	if !b.orders.IsAdmin(chatID) {
		b.reportAdminError(chatID, "wipe", orders.ErrForbidden)
		return
	}
	if args != "confirm" {
		b.sendText(chatID, "⚠️ This deletes every order, reward balance and redemption.\nSend /wipe confirm to continue.")
		return
	}
	if err := b.orders.ClearAll(ctx, chatID); err != nil {
		b.reportAdminError(chatID, "wipe data", err)
		return
	}

	b.sendText(chatID, "🧹 All orders and rewards deleted.")
}
