// Package registry keeps the process-wide command table and reconciles it
// with the platform's command registry.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/GuildCommandBot_Go/internal/command"
	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
	"github.com/osse101/GuildCommandBot_Go/internal/metrics"
)

// BootstrapReport describes which guilds made it into the bootstrap sync.
type BootstrapReport struct {
	Synced []string
	Failed map[string]error
}

// Synchronizer owns the in-memory command table, keyed by scope then name.
//
// It assumes at most one sync in flight per scope; callers serialize reloads
// of the same guild.
type Synchronizer struct {
	store    DescriptorSource
	compiler *command.Compiler
	platform Platform
	builtins []domain.CompiledCommand

	phase atomic.Int32

	mu     sync.RWMutex
	table  map[string][]domain.CompiledCommand
	states map[string]domain.ScopeState
}

// NewSynchronizer creates a Synchronizer in the BOOTSTRAPPING phase. Builtins
// are registered globally on bootstrap but never installed in the table.
func NewSynchronizer(store DescriptorSource, compiler *command.Compiler, platform Platform, builtins []domain.CompiledCommand) *Synchronizer {
	global := make([]domain.CompiledCommand, len(builtins))
	for i, b := range builtins {
		b.Scope = domain.GlobalScope
		global[i] = b
	}

	return &Synchronizer{
		store:    store,
		compiler: compiler,
		platform: platform,
		builtins: global,
		table:    make(map[string][]domain.CompiledCommand),
		states:   make(map[string]domain.ScopeState),
	}
}

// Phase reports whether bootstrap has completed.
func (s *Synchronizer) Phase() domain.Phase {
	return domain.Phase(s.phase.Load())
}

// BootstrapAll loads every guild, installs what compiled, and registers the
// global built-ins plus every prepared guild scope in a single platform call.
// Guilds that fail to load are reported and left out; they never abort the rest.
// The phase becomes READY once the platform call returns, whatever its outcome.
func (s *Synchronizer) BootstrapAll(ctx context.Context, guildIDs []string) (BootstrapReport, error) {
	log := logger.FromContext(ctx)
	report := BootstrapReport{Failed: make(map[string]error)}

	prepared := make(map[string][]domain.CompiledCommand, len(guildIDs))
	for _, id := range guildIDs {
		if _, done := prepared[id]; done {
			continue
		}
		cmds, err := s.prepare(id, true)
		if err != nil {
			metrics.CompileFailures.Inc()
			log.Error(LogMsgGuildSkipped, "guild_id", id, "error", err)
			report.Failed[id] = err
			s.mu.Lock()
			s.states[id] = domain.ScopeUnsynced
			s.mu.Unlock()
			continue
		}
		prepared[id] = cmds
		report.Synced = append(report.Synced, id)
	}

	scopes := append([]string{domain.GlobalScope}, report.Synced...)
	commands := append([]domain.CompiledCommand(nil), s.builtins...)

	s.mu.Lock()
	s.states[domain.GlobalScope] = domain.ScopeSyncing
	for _, id := range report.Synced {
		s.table[id] = prepared[id]
		s.states[id] = domain.ScopeSyncing
		commands = append(commands, prepared[id]...)
	}
	s.updateInstalledLocked()
	s.mu.Unlock()

	started := time.Now()
	err := s.platform.Synchronize(ctx, SyncRequest{Scopes: scopes, Commands: commands})
	metrics.RecordSync(metrics.SyncKindBootstrap, started, err)
	s.finish(scopes, err)
	s.phase.Store(int32(domain.PhaseReady))

	if err != nil {
		log.Error(LogMsgSyncFailed, "kind", metrics.SyncKindBootstrap, "scopes", len(scopes), "error", err)
		return report, fmt.Errorf("%w: bootstrap of %d guild(s): %w", domain.ErrPlatformSync, len(report.Synced), err)
	}

	log.Info(LogMsgBootstrapComplete,
		"guilds", len(report.Synced),
		"failed", len(report.Failed),
		"commands", len(commands))
	return report, nil
}

// ReloadGuild re-reads and recompiles one guild, replaces its table entries,
// and issues one platform call scoped to that guild whose delete list is the
// previously installed set. On a compile error nothing changes. On a platform
// error the new table is kept and the scope is left UNSYNCED.
func (s *Synchronizer) ReloadGuild(ctx context.Context, guildID string) error {
	log := logger.FromContext(ctx)

	cmds, err := s.prepare(guildID, false)
	if err != nil {
		metrics.CompileFailures.Inc()
		return err
	}

	s.mu.Lock()
	previous := s.table[guildID]
	s.table[guildID] = cmds
	s.states[guildID] = domain.ScopeSyncing
	s.updateInstalledLocked()
	s.mu.Unlock()

	req := SyncRequest{
		Scopes:   []string{guildID},
		Commands: cmds,
		Delete:   previous,
	}

	started := time.Now()
	err = s.platform.Synchronize(ctx, req)
	metrics.RecordSync(metrics.SyncKindReload, started, err)
	s.finish(req.Scopes, err)

	if err != nil {
		log.Error(LogMsgSyncFailed, "kind", metrics.SyncKindReload, "guild_id", guildID, "error", err)
		return fmt.Errorf("%w: guild %s: %w", domain.ErrPlatformSync, guildID, err)
	}

	log.Info(LogMsgGuildReloaded,
		"guild_id", guildID,
		"commands", len(cmds),
		"previous", len(previous))
	return nil
}

// Forget drops a guild's installed commands and sync state. The platform is
// not called.
func (s *Synchronizer) Forget(guildID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.table, guildID)
	delete(s.states, guildID)
	s.updateInstalledLocked()
}

// Resolve finds the command invoked as name in the guild, checking the guild
// scope before the global scope.
func (s *Synchronizer) Resolve(guildID, name string) (domain.CompiledCommand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, scope := range []string{guildID, domain.GlobalScope} {
		for _, c := range s.table[scope] {
			if c.Name == name {
				return c, true
			}
		}
	}
	return domain.CompiledCommand{}, false
}

// Visible returns the installed commands usable in the guild: global ones
// first, then the guild's own in descriptor order.
func (s *Synchronizer) Visible(guildID string) []domain.CompiledCommand {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CompiledCommand
	if guildID != domain.GlobalScope {
		out = append(out, s.table[domain.GlobalScope]...)
	}
	return append(out, s.table[guildID]...)
}

// Installed returns a copy of the commands installed for exactly scope.
func (s *Synchronizer) Installed(scope string) []domain.CompiledCommand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CompiledCommand(nil), s.table[scope]...)
}

// Builtins returns the global built-in definitions registered on bootstrap.
func (s *Synchronizer) Builtins() []domain.CompiledCommand {
	return append([]domain.CompiledCommand(nil), s.builtins...)
}

// ScopeState reports the sync state of a scope.
func (s *Synchronizer) ScopeState(scope string) domain.ScopeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[scope]
}

// UnsyncedScopes lists scopes whose last sync failed, sorted.
func (s *Synchronizer) UnsyncedScopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for scope, state := range s.states {
		if state == domain.ScopeUnsynced {
			out = append(out, scope)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Synchronizer) prepare(guildID string, ensure bool) ([]domain.CompiledCommand, error) {
	if ensure {
		if err := s.store.EnsureInitialized(guildID); err != nil {
			return nil, err
		}
	}

	descriptors, err := s.store.ReadDescriptors(guildID)
	if err != nil {
		return nil, err
	}

	return s.compiler.Compile(guildID, descriptors)
}

// finish records the outcome of a sync. When the platform names the failed
// scopes only those become UNSYNCED; any other error marks every scope.
func (s *Synchronizer) finish(scopes []string, err error) {
	var failed map[string]struct{}
	scoped := false
	if err != nil {
		failed, scoped = FailedScopes(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, scope := range scopes {
		_, hit := failed[scope]
		if err == nil || (scoped && !hit) {
			s.states[scope] = domain.ScopeSynced
		} else {
			s.states[scope] = domain.ScopeUnsynced
		}
	}
}

func (s *Synchronizer) updateInstalledLocked() {
	total := 0
	for _, cmds := range s.table {
		total += len(cmds)
	}
	metrics.InstalledCommands.Set(float64(total))
}
