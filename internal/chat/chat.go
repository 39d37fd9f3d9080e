// Package chat defines the minimal surface the command dispatcher needs
// from a chat platform, plus the Telegram adapter implementing it.
package chat

// Message is one inbound message, normalized for dispatch.
type Message struct {
	// ID identifies the message within its channel, for deletion.
	ID     string
	ChatID int64
	UserID int64

	Username string
	Text     string

	// Private marks a one-to-one channel. Shared channels double as the
	// guild whose prefix override applies.
	Private bool

	// Mentions holds the user ids tagged in the message.
	Mentions []int64
}

// EmbedField is one name/value pair of a structured reply.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a structured reply. Platforms without native embeds render it
// as formatted text.
type Embed struct {
	Title       string
	URL         string
	Author      string
	Description string
	Thumbnail   string
	Footer      string
	Fields      []EmbedField
}

// Gateway is what the dispatcher may do on the chat platform.
type Gateway interface {
	// Send delivers a plain text message to a channel.
	Send(chatID int64, text string) error

	// SendEmbed delivers a structured reply to a channel.
	SendEmbed(chatID int64, embed Embed) error

	// SendFile delivers a local file, optionally addressed to a recipient.
	SendFile(chatID int64, path, caption string) error

	// Delete removes a message from a channel.
	Delete(chatID int64, messageID string) error

	// IsAdmin reports whether a user administers a shared channel.
	IsAdmin(chatID int64, userID int64) (bool, error)

	// CustomEmoji returns a channel emoji matching any of the name hints.
	CustomEmoji(chatID int64, hints []string) (string, bool)

	// SetPresence updates the bot's displayed status.
	SetPresence(status string) error

	// BotName returns the bot's display name.
	BotName() string
}
