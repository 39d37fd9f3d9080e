package handler

import (
	"context"
	"fmt"

	"crabigator/internal/chat"
)

// handleHelp lists all commands, or shows command-specific help for one
// argument. Per-command help content is still a stub.
func (h *Handler) handleHelp(_ context.Context, req *request) error {
	if len(req.args) > 0 {
		// Asking for help about help earns the recursion picture.
		if req.args[0] == "help" {
			return h.sendImage(req, imageYoDawg)
		}

		embed := chat.Embed{
			Title: fmt.Sprintf("%s's `%s%s` Command Assistance",
				h.gateway.BotName(), req.prefix, req.args[0]),
			Fields: []chat.EmbedField{
				{Name: helpStubMessage, Value: " "},
			},
		}
		return h.sendEmbed(req.msg.ChatID, embed)
	}

	p := req.prefix
	embed := chat.Embed{
		Title:  fmt.Sprintf("%s Commands Help", h.gateway.BotName()),
		Author: h.gateway.BotName(),
		Fields: []chat.EmbedField{
			{Name: p + "help", Value: "Displays this message."},
			{Name: p + "help `<COMMAND_NAME>`", Value: "Displays more info for the specified command."},
			{Name: p + "prefix `<CHAR>`", Value: "Changes the command prefix for this server (admins only)."},
			{Name: p + "adduser `<WANIKANI_API_V2_TOKEN>`", Value: "Registers a WaniKani user to allow API usage. Private messages only."},
			{Name: p + "removeuser", Value: "Removes a user's data to no longer allow API usage."},
			{Name: p + "user", Value: "Fetches the WaniKani user's overall statistics."},
			{Name: p + "daily", Value: "Fetches the WaniKani user's daily progress overview."},
			{Name: p + "levelstats", Value: "Fetches the WaniKani user's leveling statistics."},
			{Name: p + "congratulations", Value: "🎉", Inline: true},
			{Name: p + "boo", Value: "💢", Inline: true},
			{Name: p + "love", Value: "❤", Inline: true},
		},
	}

	return h.sendEmbed(req.msg.ChatID, embed)
}
