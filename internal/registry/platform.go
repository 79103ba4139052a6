package registry

import (
	"context"
	"fmt"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
)

// SyncRequest is one synchronize call against the platform registry.
type SyncRequest struct {
	// Scopes lists every scope being replaced. A scope with no entry in
	// Commands is replaced with an empty set.
	Scopes   []string
	Commands []domain.CompiledCommand
	// Delete is the set previously installed for the scopes; anything in it
	// that is not in Commands must be gone from the platform afterwards.
	Delete []domain.CompiledCommand
}

// CommandsFor returns the commands of the request that belong to scope.
func (r SyncRequest) CommandsFor(scope string) []domain.CompiledCommand {
	return filterScope(r.Commands, scope)
}

// StaleFor returns the names from Delete in scope that Commands no longer has.
func (r SyncRequest) StaleFor(scope string) []string {
	keep := make(map[string]struct{})
	for _, c := range r.CommandsFor(scope) {
		keep[c.Name] = struct{}{}
	}

	var stale []string
	for _, c := range filterScope(r.Delete, scope) {
		if _, ok := keep[c.Name]; !ok {
			stale = append(stale, c.Name)
		}
	}
	return stale
}

func filterScope(cmds []domain.CompiledCommand, scope string) []domain.CompiledCommand {
	out := make([]domain.CompiledCommand, 0, len(cmds))
	for _, c := range cmds {
		if c.Scope == scope {
			out = append(out, c)
		}
	}
	return out
}

// ScopeError is a sync failure confined to one scope of a request.
type ScopeError struct {
	Scope string
	Err   error
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("scope %s: %v", e.Scope, e.Err)
}

func (e *ScopeError) Unwrap() error {
	return e.Err
}

// FailedScopes collects the scopes named by the ScopeErrors in err. It returns
// false when err also carries a failure not tied to a scope.
func FailedScopes(err error) (map[string]struct{}, bool) {
	failed := make(map[string]struct{})
	if !collectScopeErrors(err, failed) {
		return nil, false
	}
	return failed, true
}

func collectScopeErrors(err error, failed map[string]struct{}) bool {
	switch e := err.(type) {
	case *ScopeError:
		failed[e.Scope] = struct{}{}
		return true
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if !collectScopeErrors(inner, failed) {
				return false
			}
		}
		return true
	case interface{ Unwrap() error }:
		if inner := e.Unwrap(); inner != nil {
			return collectScopeErrors(inner, failed)
		}
	}
	return false
}

// Platform is the remote command registry.
type Platform interface {
	// Synchronize replaces the registered commands of every scope in the
	// request. Repeating an identical request must be harmless. Failures of
	// individual scopes should be reported as *ScopeError so the others can
	// still be marked synced.
	Synchronize(ctx context.Context, req SyncRequest) error
}

// DescriptorSource is the slice of guild storage the synchronizer needs.
type DescriptorSource interface {
	EnsureInitialized(guildID string) error
	ReadDescriptors(guildID string) ([]domain.CommandDescriptor, error)
}
