package bot

import (
	"fmt"

	"printit-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnReport   = "📘 Report"
	btnHandout  = "📄 Handout"
	btnPhotos   = "🖼 Photos"
	btnCustom   = "⚙️ Custom"
	btnPickup   = "🏪 Pickup"
	btnDelivery = "🚚 Delivery"
	btnCash     = "💵 Cash"
	btnOnline   = "💳 Online"
	btnConfirm  = "✅ Confirm order"
	btnCancel   = "❌ Cancel"
)

var presetButtons = map[string]string{
	btnReport:  "report",
	btnHandout: "handout",
	btnPhotos:  "photos",
}

func (b *Bot) createPresetKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnReport),
			tgbotapi.NewKeyboardButton(btnHandout),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnPhotos),
			tgbotapi.NewKeyboardButton(btnCustom),
		),
	)
}

func (b *Bot) createDeliveryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnPickup),
			tgbotapi.NewKeyboardButton(btnDelivery),
		),
	)
}

func (b *Bot) createPaymentKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCash),
			tgbotapi.NewKeyboardButton(btnOnline),
		),
	)
}

func (b *Bot) createConfirmationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnConfirm),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
}

// createRepeatKeyboard offers a one-tap repeat for each listed job.
func (b *Bot) createRepeatKeyboard(jobs []storage.Job) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔁 Repeat #%d %s", j.ID, j.FileName),
				fmt.Sprintf("repeat:%d", j.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) createStatusKeyboard(jobID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Processing", fmt.Sprintf("status:%d:%s", jobID, storage.StatusProcessing)),
			tgbotapi.NewInlineKeyboardButtonData("📦 Ready", fmt.Sprintf("status:%d:%s", jobID, storage.StatusReady)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Completed", fmt.Sprintf("status:%d:%s", jobID, storage.StatusCompleted)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", fmt.Sprintf("status:%d:%s", jobID, storage.StatusCancelled)),
		),
	)
}

func removeKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}
