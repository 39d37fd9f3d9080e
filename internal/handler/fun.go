package handler

import (
	"context"
	"path/filepath"
	"strings"
)

// Image assets used by the static commands.
const (
	imageCongrats    = "concrabs.png"
	imageRage        = "crabrage.png"
	imageLove        = "crablove.png"
	imageEva         = "eva.png"
	imageCheckmark   = "superior_checkmark.png"
	imageCertificate = "certificate.png"
	imageYoDawg      = "yodawg.png"
)

// sendImage sends an asset, addressed to a mentioned recipient when the
// first argument is a mention.
func (h *Handler) sendImage(req *request, name string) error {
	caption := ""
	if len(req.args) > 0 && strings.HasPrefix(req.args[0], "<@") {
		caption = req.args[0]
	}
	return h.gateway.SendFile(req.msg.ChatID, filepath.Join(h.assetsDir, name), caption)
}

// handleCongratulations congratulates someone.
func (h *Handler) handleCongratulations(_ context.Context, req *request) error {
	return h.sendImage(req, imageCongrats)
}

// handleBoo rages at someone.
func (h *Handler) handleBoo(_ context.Context, req *request) error {
	return h.sendImage(req, imageRage)
}

// handleLove spreads crab love.
func (h *Handler) handleLove(_ context.Context, req *request) error {
	return h.sendImage(req, imageLove)
}

func (h *Handler) handleEva(_ context.Context, req *request) error {
	return h.sendImage(req, imageEva)
}

// handleCheckmark. Clearly the superior choice.
func (h *Handler) handleCheckmark(_ context.Context, req *request) error {
	return h.sendImage(req, imageCheckmark)
}

// handleDraw hands out a certificate of kanji mastery.
func (h *Handler) handleDraw(_ context.Context, req *request) error {
	return h.sendImage(req, imageCertificate)
}
