package chat

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// fallbackEmoji maps emoji name hints to plain emoji for platforms where
// channel emoji cannot be enumerated.
var fallbackEmoji = map[string]string{
	"baka": "😤",
	"pout": "😤",
	"sad":  "😢",
	"cry":  "😭",
}

// TelegramGateway adapts a telebot bot to the Gateway interface.
type TelegramGateway struct {
	bot    *tele.Bot
	logger *zap.Logger
}

// NewTelegramGateway creates a new Telegram gateway adapter
func NewTelegramGateway(bot *tele.Bot, logger *zap.Logger) *TelegramGateway {
	return &TelegramGateway{bot: bot, logger: logger}
}

// Send delivers a plain text message
func (g *TelegramGateway) Send(chatID int64, text string) error {
	_, err := g.bot.Send(tele.ChatID(chatID), text)
	return err
}

// SendEmbed renders the embed as text; Telegram has no native embeds.
func (g *TelegramGateway) SendEmbed(chatID int64, embed Embed) error {
	var b strings.Builder

	if embed.Author != "" {
		b.WriteString(embed.Author)
		b.WriteString("\n")
	}
	if embed.Title != "" {
		b.WriteString(embed.Title)
		if embed.URL != "" {
			b.WriteString("\n")
			b.WriteString(embed.URL)
		}
		b.WriteString("\n")
	}
	if embed.Description != "" {
		b.WriteString("\n")
		b.WriteString(embed.Description)
		b.WriteString("\n")
	}
	for _, field := range embed.Fields {
		b.WriteString("\n")
		b.WriteString(field.Name)
		b.WriteString(" ")
		b.WriteString(field.Value)
	}
	if embed.Footer != "" {
		b.WriteString("\n\n")
		b.WriteString(embed.Footer)
	}

	_, err := g.bot.Send(tele.ChatID(chatID), b.String())
	return err
}

// SendFile delivers a local image file
func (g *TelegramGateway) SendFile(chatID int64, path, caption string) error {
	photo := &tele.Photo{File: tele.FromDisk(path), Caption: caption}
	_, err := g.bot.Send(tele.ChatID(chatID), photo)
	return err
}

// Delete removes a message from a channel
func (g *TelegramGateway) Delete(chatID int64, messageID string) error {
	return g.bot.Delete(tele.StoredMessage{ChatID: chatID, MessageID: messageID})
}

// IsAdmin reports whether the user administers the chat
func (g *TelegramGateway) IsAdmin(chatID int64, userID int64) (bool, error) {
	admins, err := g.bot.AdminsOf(&tele.Chat{ID: chatID})
	if err != nil {
		return false, fmt.Errorf("fetch chat admins: %w", err)
	}

	for _, admin := range admins {
		if admin.User != nil && admin.User.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// CustomEmoji returns a plain emoji for the first known hint. Telegram
// bots cannot enumerate channel emoji the way guild emoji work.
func (g *TelegramGateway) CustomEmoji(_ int64, hints []string) (string, bool) {
	for _, hint := range hints {
		if emoji, ok := fallbackEmoji[strings.ToLower(hint)]; ok {
			return emoji, true
		}
	}
	return "", false
}

// SetPresence updates the bot's short description, the closest Telegram
// equivalent of a playing status.
func (g *TelegramGateway) SetPresence(status string) error {
	_, err := g.bot.Raw("setMyShortDescription", map[string]string{
		"short_description": status,
	})
	return err
}

// BotName returns the bot's username
func (g *TelegramGateway) BotName() string {
	if g.bot.Me == nil {
		return "Crabigator"
	}
	return g.bot.Me.Username
}

// FromTelebot normalizes an inbound telebot message for dispatch.
func FromTelebot(c tele.Context) Message {
	msg := Message{
		ID:       strconv.Itoa(c.Message().ID),
		ChatID:   c.Chat().ID,
		UserID:   c.Sender().ID,
		Username: c.Sender().Username,
		Text:     c.Text(),
		Private:  c.Chat().Type == tele.ChatPrivate,
	}

	for _, entity := range c.Message().Entities {
		if entity.Type == tele.EntityTMention && entity.User != nil {
			msg.Mentions = append(msg.Mentions, entity.User.ID)
		}
	}

	return msg
}
