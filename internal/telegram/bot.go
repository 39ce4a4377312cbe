package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"aktien-alarm-bot/internal/commands"
	"aktien-alarm-bot/lib/translation"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig, quotes commands.Quoter, watchlist commands.Watchlist) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:       bot,
		Config:    c,
		Quotes:    quotes,
		Watchlist: watchlist,
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() (tgbotapi.UpdatesChannel, error) {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig), nil
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// SendAlert delivers a monitor alert to the configured recipient chat.
func (b *Bot) SendAlert(text string) error {
	return b.SendMessage(Message{
		ChatID: b.Config.ChatID,
		Text:   text,
	})
}

// HandleUpdate processes Telegram updates
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	ctx := context.Background()
	text := commands.StartText()
	log.Debugf("received command: %s", u.Message.Command())

	var err error = nil

	switch u.Message.Command() {
	case "start":
		text = commands.StartText()
	case "chatid":
		text = fmt.Sprintf("💬 Deine Chat\\-ID ist: `%d`", u.Message.Chat.ID)
	case "preis":
		if text, err = commands.CommandPreis(ctx, b.Quotes, u.Message.CommandArguments()); err != nil {
			text = translation.Translate("❌ Symbol nicht gefunden oder keine Daten verfügbar\\.")
			log.Error(err)
		}
	case "setze":
		if text, err = commands.CommandSetze(b.Watchlist, u.Message.CommandArguments()); err != nil {
			text = translation.Translate("❌ Fehler beim Speichern der Liste\\.")
			log.Error(err)
		}
	case "setall":
		if text, err = commands.CommandSetall(b.Watchlist, u.Message.CommandArguments()); err != nil {
			text = translation.Translate("❌ Fehler beim Speichern\\.")
			log.Error(err)
		}
	case "liste":
		if text, err = commands.CommandListe(b.Watchlist); err != nil {
			text = translation.Translate("❌ Fehler beim Lesen der Liste\\.")
			log.Error(err)
		}
	case "verlauf":
		if text, err = commands.CommandVerlauf(10); err != nil {
			text = translation.Translate("❌ Fehler beim Lesen des Verlaufs\\.")
			log.Error(err)
		}
	case "chart":
		chartData, caption, err := commands.CommandChart(ctx, b.Quotes, u.Message.CommandArguments())
		if err != nil {
			text = translation.Translate("❌ Symbol nicht gefunden oder keine Daten verfügbar\\.")
			log.Error(err)
		} else if chartData != nil {
			photo := tgbotapi.NewPhoto(u.Message.Chat.ID, tgbotapi.FileBytes{
				Name:  "chart.png",
				Bytes: chartData,
			})
			photo.Caption = caption
			photo.ParseMode = "MarkdownV2"
			photo.ReplyToMessageID = u.Message.MessageID
			if _, err = b.Bot.Send(photo); err != nil {
				log.Error("error sending chart:", err)
			}
			return ""
		} else {
			text = caption
		}
	}

	return text
}
