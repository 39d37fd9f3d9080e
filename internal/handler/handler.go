// Package handler parses inbound chat messages, routes commands and
// renders replies. Each message is independent: there is no multi-turn
// conversation state.
package handler

import (
	"context"
	"fmt"
	"strings"

	"crabigator/internal/chat"
	"crabigator/internal/domain"
	"crabigator/internal/metrics"
	"crabigator/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatsProvider fetches WaniKani data for registered users.
type StatsProvider interface {
	FetchUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	GetOrFetchProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	FetchSummary(ctx context.Context, userID int64) (*domain.Summary, error)
	FetchItemCounts(ctx context.Context, userID int64) (domain.ItemCounts, error)
	FetchReviewCount(ctx context.Context, userID int64, sinceDate string) (int, error)
	FetchLevelProgressions(ctx context.Context, userID int64) ([]domain.LevelProgression, error)
}

// command is one dispatch target. name is the canonical command used in
// logs and metrics regardless of which alias invoked it.
type command struct {
	name   string
	handle func(h *Handler, ctx context.Context, req *request) error
}

// request carries one parsed command invocation through its handler.
type request struct {
	msg     chat.Message
	prefix  string
	command string
	args    []string
}

// Handler manages all bot interactions
type Handler struct {
	gateway  chat.Gateway
	accounts *service.AccountService
	stats    StatsProvider
	logger   *zap.Logger

	assetsDir string
	sayings   []string

	routes map[string]command
}

// NewHandler creates a new handler instance
func NewHandler(
	gateway chat.Gateway,
	accounts *service.AccountService,
	stats StatsProvider,
	assetsDir string,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		gateway:   gateway,
		accounts:  accounts,
		stats:     stats,
		logger:    logger,
		assetsDir: assetsDir,
		sayings:   defaultSayings,
	}
	h.routes = buildRoutes()
	return h
}

// buildRoutes maps every command name and alias to its handler.
func buildRoutes() map[string]command {
	routes := make(map[string]command)

	register := func(cmd command, aliases ...string) {
		for _, alias := range aliases {
			routes[alias] = cmd
		}
	}

	register(command{"prefix", (*Handler).handlePrefix}, "prefix")
	register(command{"adduser", (*Handler).handleAddUser}, "adduser", "addme")
	register(command{"removeuser", (*Handler).handleRemoveUser}, "removeuser", "removeme")
	register(command{"user", (*Handler).handleUser}, "user", "userstats")
	register(command{"daily", (*Handler).handleDaily},
		"daily", "dailyoverview", "dailystatus", "dailystats")
	register(command{"levelstats", (*Handler).handleLevelStats},
		"levelstats", "leveling", "levelingstatus", "levelingstats")
	register(command{"draw", (*Handler).handleDraw}, "draw", "certify")
	register(command{"congratulations", (*Handler).handleCongratulations},
		"grats", "gratz", "congrats", "congratulations", "gz", "gj", "goodjob")
	register(command{"boo", (*Handler).handleBoo}, "boo", "anger", "angry", "bad", "rage")
	register(command{"love", (*Handler).handleLove}, "love", "<3", "heart")
	register(command{"eva", (*Handler).handleEva}, "eva")
	register(command{"checkmark", (*Handler).handleCheckmark},
		"ballot_box_with_check", ":ballot_box_with_check:", "☑")
	register(command{"help", (*Handler).handleHelp}, "help", "h", "commands")

	return routes
}

// HandleMessage dispatches one inbound message. A handler failure never
// propagates: it is logged and converted to the generic failure reply.
func (h *Handler) HandleMessage(ctx context.Context, msg chat.Message) error {
	prefix := h.accounts.ResolvePrefix(msg.ChatID, msg.Private)

	if !strings.HasPrefix(msg.Text, prefix) {
		return nil
	}

	content := strings.TrimPrefix(msg.Text, prefix)
	if content == "" {
		return nil
	}

	words := strings.Split(content, " ")
	name := strings.ToLower(words[0])

	req := &request{
		msg:     msg,
		prefix:  prefix,
		command: name,
		args:    words[1:],
	}

	logger := h.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("command", name),
		zap.Int64("user_id", msg.UserID),
		zap.Int64("chat_id", msg.ChatID),
	)
	logger.Info("command received")

	cmd, ok := h.routes[name]
	if !ok {
		return h.gateway.Send(msg.ChatID, unknownCommandMessage(prefix))
	}

	metrics.CommandsTotal.WithLabelValues(cmd.name).Inc()

	if err := h.dispatch(ctx, cmd, req); err != nil {
		metrics.CommandErrorsTotal.WithLabelValues(cmd.name).Inc()
		logger.Error("command failed", zap.Error(err))
		return h.gateway.Send(msg.ChatID, oopsieMessage(prefix, name))
	}

	return nil
}

// dispatch runs one handler, converting panics into errors so a broken
// handler cannot take down the message loop.
func (h *Handler) dispatch(ctx context.Context, cmd command, req *request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()

	return cmd.handle(h, ctx, req)
}

type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("handler panic: %v", e.value)
}
