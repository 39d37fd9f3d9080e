package handler

import (
	"context"
	"errors"

	"crabigator/internal/domain"

	"go.uber.org/zap"
)

// farewellEmojiHints select a channel emoji for the deregistration reply.
var farewellEmojiHints = []string{"baka", "pout", "sad", "cry"}

// handlePrefix changes the guild's command prefix. Admin only, shared
// channels only.
func (h *Handler) handlePrefix(ctx context.Context, req *request) error {
	if req.msg.Private {
		return h.gateway.Send(req.msg.ChatID, prefixPrivateMessage)
	}

	admin, err := h.gateway.IsAdmin(req.msg.ChatID, req.msg.UserID)
	if err != nil {
		return err
	}
	if !admin {
		return h.gateway.Send(req.msg.ChatID, prefixDeniedMessage)
	}

	switch {
	case len(req.args) == 0:
		return h.gateway.Send(req.msg.ChatID, prefixUsageMessage(req.prefix))
	case len(req.args) > 1:
		return h.gateway.Send(req.msg.ChatID, prefixNoSpacesMessage)
	}

	if err := h.accounts.SetGuildPrefix(req.msg.ChatID, req.args[0]); err != nil {
		if errors.Is(err, domain.ErrInvalidPrefix) {
			return h.gateway.Send(req.msg.ChatID, prefixNoSpacesMessage)
		}
		return err
	}

	return h.gateway.Send(req.msg.ChatID, prefixChangedMessage(req.args[0]))
}

// handleAddUser registers a WaniKani API token. Private channels only,
// since the token is a secret; the triggering message is deleted.
func (h *Handler) handleAddUser(ctx context.Context, req *request) error {
	if !req.msg.Private {
		return h.gateway.Send(req.msg.ChatID, addUserNotPrivateMessage)
	}

	if len(req.args) != 1 {
		return h.gateway.Send(req.msg.ChatID, addUserUsageMessage(req.prefix))
	}

	err := h.accounts.Register(req.msg.UserID, req.args[0])
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return h.gateway.Send(req.msg.ChatID, tokenInvalidMessage)
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return h.gateway.Send(req.msg.ChatID, alreadyRegisteredMessage(req.prefix))
	case err != nil:
		return err
	}

	// The message contains the token; best effort removal.
	if err := h.gateway.Delete(req.msg.ChatID, req.msg.ID); err != nil {
		h.logger.Warn("failed to delete registration message",
			zap.Int64("chat_id", req.msg.ChatID),
			zap.Error(err),
		)
	}

	return h.gateway.Send(req.msg.ChatID, watchingMessage(mention(req.msg)))
}

// handleRemoveUser deletes a user's stored credential.
func (h *Handler) handleRemoveUser(ctx context.Context, req *request) error {
	existed, err := h.accounts.Remove(req.msg.UserID)
	if err != nil {
		return err
	}

	if !existed {
		return h.gateway.Send(req.msg.ChatID, unknownPersonMessage)
	}

	emoji := ":sob:"
	if custom, ok := h.gateway.CustomEmoji(req.msg.ChatID, farewellEmojiHints); ok {
		emoji = custom
	}

	return h.gateway.Send(req.msg.ChatID, farewellMessage(emoji))
}
