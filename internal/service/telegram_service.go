package service

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"truckbooking/internal/db"
)

// TelegramService pushes new-booking alerts to the operators' Telegram
// chat. Missing or invalid credentials leave the service disabled:
// every Notify call becomes a no-op instead of an error.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService() *TelegramService {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatIDStr == "" {
		log.Println("WARNING: Telegram credentials not configured. Booking notifications will not be sent.")
		return &TelegramService{}
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: invalid TELEGRAM_CHAT_ID %q: %v. Booking notifications will not be sent.", chatIDStr, err)
		return &TelegramService{}
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("WARNING: could not initialize Telegram bot: %v. Booking notifications will not be sent.", err)
		return &TelegramService{}
	}

	return &TelegramService{bot: bot, chatID: chatID}
}

// NotifyBooking sends the bilingual summary message, then each attached
// document image as a captioned photo. A failed photo upload is only a
// warning; the summary message is the notification itself.
func (t *TelegramService) NotifyBooking(booking *db.Booking) error {
	if t.bot == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatBookingMessage(booking))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send booking message: %w", err)
	}

	t.sendPhoto(booking.NationalIDImage, "national_id.jpg", "📋 صورة بطاقة التعريف الوطنية - National ID Card")
	t.sendPhoto(booking.GoldCardImage, "business_registration.jpg", "💳 صورة السجل التجاري - Business Registration")

	log.Printf("Telegram notification sent for booking %s", booking.ID)
	return nil
}

// NotifyText sends a plain text message to the operator chat.
func (t *TelegramService) NotifyText(text string) error {
	if t.bot == nil {
		return nil
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (t *TelegramService) sendPhoto(dataURI *string, name, caption string) {
	if dataURI == nil {
		return
	}

	image, err := decodeDataURI(*dataURI)
	if err != nil {
		log.Printf("WARNING: could not decode %s: %v", name, err)
		return
	}

	photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FileBytes{Name: name, Bytes: image})
	photo.Caption = caption
	if _, err := t.bot.Send(photo); err != nil {
		log.Printf("WARNING: failed to send %s: %v", name, err)
	}
}

// FormatBookingMessage renders the operator summary of every scalar
// field, Arabic and English side by side. Optional lines appear only
// when the field is present.
func FormatBookingMessage(b *db.Booking) string {
	var sb strings.Builder
	sb.WriteString("🚛 *طلب حجز جديد - New Booking Request*\n\n")
	fmt.Fprintf(&sb, "👤 *الاسم / Name:* %s %s\n", b.FirstName, b.LastName)
	fmt.Fprintf(&sb, "📞 *الهاتف / Phone:* %s\n", b.Phone)
	fmt.Fprintf(&sb, "✉️ *البريد الإلكتروني / Email:* %s\n", b.Email)
	fmt.Fprintf(&sb, "📍 *الولاية / Wilaya:* %s\n", b.Wilaya)
	fmt.Fprintf(&sb, "🏘️ *البلدية / Commune:* %s\n", b.Commune)
	fmt.Fprintf(&sb, "💼 *نوع النشاط / Business Type:* %s\n", b.BusinessType)
	if b.RegistrationNumber != nil {
		fmt.Fprintf(&sb, "📋 *رقم التسجيل / Registration:* %s\n", *b.RegistrationNumber)
	}
	fmt.Fprintf(&sb, "🚚 *نموذج الشاحنة / Truck Model:* %s طن\n", b.TruckModel)
	if b.Message != nil {
		fmt.Fprintf(&sb, "💬 *الرسالة / Message:* %s\n", *b.Message)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// decodeDataURI decodes the base64 payload of a data:image/...;base64
// URI into raw image bytes.
func decodeDataURI(uri string) ([]byte, error) {
	_, payload, found := strings.Cut(uri, ",")
	if !found {
		return nil, fmt.Errorf("not a data URI")
	}
	return base64.StdEncoding.DecodeString(payload)
}
