package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
	"github.com/osse101/GuildCommandBot_Go/internal/metrics"
	"github.com/osse101/GuildCommandBot_Go/internal/registry"
)

// Fields Discord assigns itself and that descriptors must not override.
var serverAssignedFields = []string{"id", "application_id", "guild_id", "version"}

// CommandPlatform registers compiled commands with Discord, one bulk overwrite
// per scope.
type CommandPlatform struct {
	session     *discordgo.Session
	forceUpdate bool

	mu    sync.RWMutex
	appID string
}

// NewCommandPlatform creates a CommandPlatform. An empty appID is filled in
// from the Ready event.
func NewCommandPlatform(s *discordgo.Session, appID string, forceUpdate bool) *CommandPlatform {
	return &CommandPlatform{session: s, appID: appID, forceUpdate: forceUpdate}
}

// AppID returns the application ID commands are registered under.
func (p *CommandPlatform) AppID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.appID
}

// SetDefaultAppID sets the application ID unless one was configured.
func (p *CommandPlatform) SetDefaultAppID(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.appID == "" {
		p.appID = id
	}
}

// Synchronize replaces the commands of every requested scope. The global scope
// is skipped when Discord already has exactly the desired set, unless force
// update is on. Every scope is attempted; failures are joined as
// *registry.ScopeError.
func (p *CommandPlatform) Synchronize(ctx context.Context, req registry.SyncRequest) error {
	appID := p.AppID()
	if appID == "" {
		return errors.New("discord application ID is not known yet")
	}

	log := logger.FromContext(ctx)
	var errs []error
	for _, scope := range req.Scopes {
		if err := p.syncScope(ctx, log, appID, scope, req); err != nil {
			errs = append(errs, &registry.ScopeError{Scope: scope, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (p *CommandPlatform) syncScope(ctx context.Context, log *slog.Logger, appID, scope string, req registry.SyncRequest) error {
	desired, err := toApplicationCommands(req.CommandsFor(scope))
	if err != nil {
		return err
	}

	guildID := scope
	if scope == domain.GlobalScope {
		guildID = ""
		if !p.forceUpdate {
			existing, err := p.session.ApplicationCommands(appID, "", discordgo.WithContext(ctx))
			if err != nil {
				return fmt.Errorf("failed to fetch existing commands: %w", err)
			}
			if commandsEqual(existing, desired) {
				log.Info("Global commands unchanged, skipping registration", "count", len(existing))
				return nil
			}
		}
	}

	if _, err := p.session.ApplicationCommandBulkOverwrite(appID, guildID, desired, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to bulk overwrite commands: %w", err)
	}

	if stale := req.StaleFor(scope); len(stale) > 0 {
		metrics.StaleCommandsPurged.Add(float64(len(stale)))
		log.Info("Removed stale commands", "scope", scope, "commands", stale)
	}
	log.Debug("Commands registered", "scope", scope, "count", len(desired))
	return nil
}

// toApplicationCommands converts compiled commands to Discord's form. The
// result is never nil so an empty scope serializes as [] and clears it.
func toApplicationCommands(cmds []domain.CompiledCommand) ([]*discordgo.ApplicationCommand, error) {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		ac, err := toApplicationCommand(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ac)
	}
	return out, nil
}

// toApplicationCommand carries every extra descriptor field (options,
// permissions, localizations) through to Discord as-is.
func toApplicationCommand(c domain.CompiledCommand) (*discordgo.ApplicationCommand, error) {
	raw := make(map[string]json.RawMessage, len(c.Fields)+2)
	for k, v := range c.Fields {
		raw[k] = v
	}
	for _, k := range serverAssignedFields {
		delete(raw, k)
	}

	var err error
	if raw[domain.DescriptorKeyName], err = json.Marshal(c.Name); err != nil {
		return nil, err
	}
	if raw[domain.DescriptorKeyDescription], err = json.Marshal(c.Description); err != nil {
		return nil, err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command %s: %w", c.Name, err)
	}

	var ac discordgo.ApplicationCommand
	if err := json.Unmarshal(data, &ac); err != nil {
		return nil, fmt.Errorf("%w: command %s: %w", domain.ErrConfigFormat, c.Name, err)
	}
	return &ac, nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	// Build map of existing commands by name
	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, desired := range desired {
		existing, ok := existingMap[desired.Name]
		if !ok {
			return false
		}
		if !commandEqual(existing, desired) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}

	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || a.Choices[i].Value != b.Choices[i].Value {
			return false
		}
	}

	return true
}
