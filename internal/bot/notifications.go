package bot

import (
	"fmt"

	"printit-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// NotifyNewOrder posts the order to the notification channel and to
// every admin. Admin copies carry the status keyboard.
func (b *Bot) NotifyNewOrder(job storage.Job, username string) {
	text := FormatOrderNotification(job, username)

	if b.cfg.NotifyChannelID != 0 {
		if _, err := b.api.Send(tgbotapi.NewMessage(b.cfg.NotifyChannelID, text)); err != nil {
			b.logger.Error("Failed to send channel notification",
				zap.Int64("channel_id", b.cfg.NotifyChannelID),
				zap.Int64("job_id", job.ID),
				zap.Error(err))
		}
	}

	for _, adminID := range b.cfg.AdminIDs {
		if adminID == 0 {
			continue
		}
		msg := tgbotapi.NewMessage(adminID, text)
		msg.ReplyMarkup = b.createStatusKeyboard(job.ID)
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("Failed to send admin notification",
				zap.Int64("chat_id", adminID),
				zap.Int64("job_id", job.ID),
				zap.Error(err))
		}
	}
}

// notifyStatusChange tells the job owner about a new status.
func (b *Bot) notifyStatusChange(job storage.Job, status string) {
	msg := tgbotapi.NewMessage(job.UserID, fmt.Sprintf(
		"ℹ️ Your order #%d (%s) is now: %s", job.ID, job.FileName, status))
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to notify user about status change",
			zap.Int64("chat_id", job.UserID),
			zap.Int64("job_id", job.ID),
			zap.Error(err))
	}
}
