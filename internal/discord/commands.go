package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/lifecycle"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
	"github.com/osse101/GuildCommandBot_Go/internal/metrics"
)

// handleCommand routes a slash command to the built-in handlers or the
// guild's canned response.
func (b *Bot) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	log := logger.FromContext(ctx).With("command", name, "guild_id", i.GuildID)

	RecordCommand()

	// Slash commands only resolve inside a guild.
	if i.GuildID == "" {
		respond(ctx, s, i, MsgGuildOnly)
		return
	}

	var err error
	builtin := true
	switch name {
	case domain.CommandHelp:
		b.handleHelp(ctx, s, i)
	case domain.CommandReload:
		err = b.handleReload(ctx, s, i)
	default:
		builtin = false
		err = b.handleCustom(ctx, s, i, name)
	}

	metrics.RecordInvocation(name, builtin, err)
	if err != nil {
		log.Warn("Command failed", "error", err)
	}
}

func (b *Bot) handleHelp(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	text := b.Controller.Help(i.GuildID)
	if text == "" {
		// Discord rejects empty messages.
		text = MsgNoCommands
	}
	respond(ctx, s, i, text)
}

func (b *Bot) handleReload(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if !deferResponse(ctx, s, i) {
		return fmt.Errorf("failed to defer reload response")
	}

	if err := b.Controller.Reload(ctx, i.GuildID); err != nil {
		respondFriendlyError(ctx, s, i, err)
		return err
	}

	editResponse(ctx, s, i, lifecycle.ReloadConfirmation)
	return nil
}

func (b *Bot) handleCustom(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, name string) error {
	text, err := b.Controller.Invoke(i.GuildID, name)
	if err != nil {
		respond(ctx, s, i, formatFriendlyError(err))
		return err
	}
	if text == "" {
		text = domain.DefaultResponseText
	}
	respond(ctx, s, i, text)
	return nil
}

// respond sends an immediate channel message.
func respond(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: truncate(content),
		},
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error("Failed to respond to interaction", "error", err)
	}
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any operation that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// editResponse replaces the content of a deferred response.
func editResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	content = truncate(content)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}, discordgo.WithContext(ctx)); err != nil {
		logger.FromContext(ctx).Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError edits a deferred response with a readable error.
func respondFriendlyError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	editResponse(ctx, s, i, formatFriendlyError(err))
}

// formatFriendlyError maps command errors to messages users can act on
func formatFriendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrReloadInProgress):
		return MsgReloadInProgress
	case errors.Is(err, domain.ErrNotReady):
		return MsgNotReady
	case errors.Is(err, domain.ErrUnknownCommand):
		return MsgUnknownCommand
	case errors.Is(err, domain.ErrConfigFormat):
		return withDetail(MsgConfigFormat, err)
	case errors.Is(err, domain.ErrDuplicateCommand):
		return withDetail(MsgDuplicateCommand, err)
	case errors.Is(err, domain.ErrPlatformSync):
		return MsgSyncFailed
	default:
		return MsgGenericError
	}
}

// withDetail appends the error text after the first ": " so users see which
// entry was rejected.
func withDetail(msg string, err error) string {
	detail := err.Error()
	if idx := strings.Index(detail, ": "); idx >= 0 {
		detail = detail[idx+2:]
	}
	return fmt.Sprintf("%s\n`%s`", msg, detail)
}

// truncate keeps content within Discord's message length limit.
func truncate(content string) string {
	if utf8.RuneCountInString(content) <= maxMessageLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxMessageLength-utf8.RuneCountInString(truncationSuffix)]) + truncationSuffix
}
