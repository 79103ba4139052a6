// Package lifecycle reacts to platform events and user commands, driving
// guild storage and the command registry.
package lifecycle

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/osse101/GuildCommandBot_Go/internal/command"
	"github.com/osse101/GuildCommandBot_Go/internal/concurrency"
	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
	"github.com/osse101/GuildCommandBot_Go/internal/metrics"
	"github.com/osse101/GuildCommandBot_Go/internal/registry"
)

// GuildStore is the storage lifecycle the controller drives.
type GuildStore interface {
	EnsureInitialized(guildID string) error
	Destroy(guildID string) error
}

// Registry is the command table and sync surface the controller drives.
type Registry interface {
	Phase() domain.Phase
	BootstrapAll(ctx context.Context, guildIDs []string) (registry.BootstrapReport, error)
	ReloadGuild(ctx context.Context, guildID string) error
	Resolve(guildID, name string) (domain.CompiledCommand, bool)
	Visible(guildID string) []domain.CompiledCommand
	Forget(guildID string)
}

// Controller handles startup, guild join/leave, and the built-in commands.
type Controller struct {
	store    GuildStore
	registry Registry
	reloads  *concurrency.LockManager
	started  atomic.Bool
}

// NewController creates a Controller.
func NewController(store GuildStore, reg Registry) *Controller {
	return &Controller{
		store:    store,
		registry: reg,
		reloads:  concurrency.NewLockManager(),
	}
}

// Builtins returns the global built-in command definitions.
func Builtins() []domain.CompiledCommand {
	return []domain.CompiledCommand{
		{Name: domain.CommandHelp, Description: HelpDescription, Scope: domain.GlobalScope},
		{Name: domain.CommandReload, Description: ReloadDescription, Scope: domain.GlobalScope},
	}
}

// Ready reports whether startup has completed.
func (c *Controller) Ready() bool {
	return c.registry.Phase() == domain.PhaseReady
}

// Startup bootstraps every guild the bot belongs to with one batched sync.
// It runs once per process; later calls (gateway reconnects) are ignored.
// A returned error means the platform sync failed; per-guild load failures
// are only logged.
func (c *Controller) Startup(ctx context.Context, guildIDs []string) error {
	log := logger.FromContext(ctx)
	if !c.started.CompareAndSwap(false, true) {
		log.Info(LogMsgStartupRepeated)
		return nil
	}

	log.Info(LogMsgStartupBegin, "guilds", len(guildIDs))
	metrics.RecordGuildEvent(metrics.GuildEventStartup)

	report, err := c.registry.BootstrapAll(ctx, guildIDs)
	for id, guildErr := range report.Failed {
		log.Warn(LogMsgStartupGuildFailed, "guild_id", id, "error", guildErr)
	}
	return err
}

// GuildJoin initializes storage for a newly joined guild. It does not sync:
// the guild has no commands until a reload or restart.
func (c *Controller) GuildJoin(ctx context.Context, guildID string) error {
	log := logger.FromContext(ctx)
	if !c.Ready() {
		log.Debug(LogMsgEventBeforeReady, "event", metrics.GuildEventJoin, "guild_id", guildID)
		return nil
	}

	if err := c.store.EnsureInitialized(guildID); err != nil {
		return fmt.Errorf("failed to initialize joined guild %s: %w", guildID, err)
	}

	metrics.RecordGuildEvent(metrics.GuildEventJoin)
	log.Info(LogMsgGuildJoined, "guild_id", guildID)
	return nil
}

// GuildLeave removes a departed guild's storage and installed commands.
// Remote commands are left for the platform to discard.
func (c *Controller) GuildLeave(ctx context.Context, guildID string) error {
	log := logger.FromContext(ctx)
	if !c.Ready() {
		log.Debug(LogMsgEventBeforeReady, "event", metrics.GuildEventLeave, "guild_id", guildID)
		return nil
	}

	if err := c.store.Destroy(guildID); err != nil {
		return fmt.Errorf("failed to remove departed guild %s: %w", guildID, err)
	}
	c.registry.Forget(guildID)

	metrics.RecordGuildEvent(metrics.GuildEventLeave)
	log.Info(LogMsgGuildLeft, "guild_id", guildID)
	return nil
}

// Help lists the commands usable in the guild, one "/<name> - <description>"
// per line. No commands yields an empty string.
func (c *Controller) Help(guildID string) string {
	return command.FormatHelp(c.registry.Visible(guildID))
}

// Reload re-syncs one guild's commands from disk. A second reload for the same
// guild while one is running is rejected with domain.ErrReloadInProgress.
func (c *Controller) Reload(ctx context.Context, guildID string) error {
	if !c.Ready() {
		return domain.ErrNotReady
	}

	release, ok := c.reloads.TryAcquire(guildID)
	if !ok {
		metrics.ReloadsRejected.Inc()
		logger.FromContext(ctx).Info(LogMsgReloadRejected, "guild_id", guildID)
		return fmt.Errorf("%w: guild %s", domain.ErrReloadInProgress, guildID)
	}
	defer release()

	// Missing storage is re-created empty rather than treated as an error.
	if err := c.store.EnsureInitialized(guildID); err != nil {
		return err
	}

	metrics.RecordGuildEvent(metrics.GuildEventReload)
	return c.registry.ReloadGuild(ctx, guildID)
}

// Invoke returns the canned response of a guild's compiled command.
func (c *Controller) Invoke(guildID, name string) (string, error) {
	cmd, ok := c.registry.Resolve(guildID, name)
	if !ok {
		return "", fmt.Errorf("%w: /%s in guild %s", domain.ErrUnknownCommand, name, guildID)
	}
	return cmd.ResponseText, nil
}
