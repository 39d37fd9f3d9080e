package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"crabigator/internal/chat"
)

// defaultAvatarURL is WaniKani's stock profile picture.
const defaultAvatarURL = "https://cdn.wanikani.com/default-avatar-300x300-20121121.png"

// resolveTarget picks the user a stats command is about: the invoker by
// default, or one mentioned/numeric-id argument.
func resolveTarget(req *request) (int64, bool) {
	if len(req.args) == 0 {
		return req.msg.UserID, true
	}
	if len(req.args) > 1 {
		return 0, false
	}

	if len(req.msg.Mentions) == 1 {
		return req.msg.Mentions[0], true
	}
	if len(req.msg.Mentions) > 1 {
		return 0, false
	}

	id, err := strconv.ParseInt(req.args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireRegistered resolves the target user and verifies a credential
// exists, sending the appropriate canned reply otherwise. The returned
// bool tells the caller whether to proceed.
func (h *Handler) requireRegistered(req *request) (int64, bool, error) {
	target, ok := resolveTarget(req)
	if !ok {
		return 0, false, h.gateway.Send(req.msg.ChatID, ambiguousTargetMessage)
	}

	registered, err := h.accounts.Registered(target)
	if err != nil {
		return 0, false, err
	}
	if !registered {
		return 0, false, h.gateway.Send(req.msg.ChatID, unknownUserMessage(req.prefix))
	}

	return target, true, nil
}

// handleUser answers with the target's overall WaniKani statistics.
func (h *Handler) handleUser(ctx context.Context, req *request) error {
	target, ok, err := h.requireRegistered(req)
	if !ok {
		return err
	}

	profile, err := h.stats.FetchUserProfile(ctx, target)
	if err != nil {
		return err
	}
	summary, err := h.stats.FetchSummary(ctx, target)
	if err != nil {
		return err
	}

	embed := chat.Embed{
		Title:     "WaniKani Profile",
		URL:       profile.ProfileURL,
		Author:    profile.Username,
		Thumbnail: defaultAvatarURL,
		Fields: []chat.EmbedField{
			{Name: "Level", Value: strconv.Itoa(profile.Level)},
			{Name: "Lessons available:", Value: strconv.Itoa(len(summary.AvailableLessons))},
			{Name: "Reviews available:", Value: strconv.Itoa(len(summary.AvailableReviews))},
		},
	}

	return h.sendEmbed(req.msg.ChatID, embed)
}

// handleDaily answers with the target's daily overview: summary plus item
// counts tallied across all assignment pages.
func (h *Handler) handleDaily(ctx context.Context, req *request) error {
	target, ok, err := h.requireRegistered(req)
	if !ok {
		return err
	}

	summary, err := h.stats.FetchSummary(ctx, target)
	if err != nil {
		return err
	}
	counts, err := h.stats.FetchItemCounts(ctx, target)
	if err != nil {
		return err
	}
	doneToday, err := h.stats.FetchReviewCount(ctx, target, time.Now().UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}

	embed := chat.Embed{
		Title: "Daily Overview",
		Fields: []chat.EmbedField{
			{Name: "Lessons available:", Value: strconv.Itoa(len(summary.AvailableLessons))},
			{Name: "Reviews available:", Value: strconv.Itoa(len(summary.AvailableReviews))},
			{Name: "Reviews done today:", Value: strconv.Itoa(doneToday)},
			{Name: "Upcoming reviews:", Value: strconv.Itoa(len(summary.UpcomingReviews))},
			{Name: "Radicals learned:", Value: strconv.Itoa(counts.Radicals), Inline: true},
			{Name: "Kanji learned:", Value: strconv.Itoa(counts.Kanji), Inline: true},
			{Name: "Vocabulary learned:", Value: strconv.Itoa(counts.Vocabulary), Inline: true},
			{Name: "Items burned:", Value: fmt.Sprintf("%d 🔥", counts.Burned)},
		},
	}

	return h.sendEmbed(req.msg.ChatID, embed)
}

// handleLevelStats fetches the target's level history onto the cached
// profile. The rendered reply is still under construction upstream.
func (h *Handler) handleLevelStats(ctx context.Context, req *request) error {
	target, ok, err := h.requireRegistered(req)
	if !ok {
		return err
	}

	if _, err := h.stats.GetOrFetchProfile(ctx, target); err != nil {
		return err
	}
	if _, err := h.stats.FetchLevelProgressions(ctx, target); err != nil {
		return err
	}

	return h.gateway.Send(req.msg.ChatID, levelStatsStubMessage)
}
