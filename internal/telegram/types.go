package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"aktien-alarm-bot/internal/commands"
)

// BotConfig configuration of the bot
type BotConfig struct {
	Token          string
	Debug          bool
	UpdatesTimeout int
	// ChatID is the single alert recipient.
	ChatID int64
}

// Bot telegram interaction client
type Bot struct {
	Bot       *tgbotapi.BotAPI
	Config    BotConfig
	Quotes    commands.Quoter
	Watchlist commands.Watchlist
}

// Message a telegram message struct
type Message struct {
	ChatID    int64
	MessageID int
	Text      string
}
