// Package watcher reloads a guild's commands when its descriptor file is
// edited on disk.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/logger"
)

// DefaultDebounce is how long a descriptor must stay untouched before it is
// reloaded.
const DefaultDebounce = 500 * time.Millisecond

const tickInterval = 100 * time.Millisecond

// ReloadFunc reloads one guild's commands.
type ReloadFunc func(ctx context.Context, guildID string) error

// DescriptorWatcher watches the guild root and every guild directory below it.
type DescriptorWatcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	root      string
	isGuildID func(string) bool
	reload    ReloadFunc
	debounce  time.Duration
	pending   map[string]time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// New creates a DescriptorWatcher. isGuildID filters directory names so stray
// files under root are ignored.
func New(root string, debounce time.Duration, isGuildID func(string) bool, reload ReloadFunc) (*DescriptorWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &DescriptorWatcher{
		watcher:   w,
		root:      root,
		isGuildID: isGuildID,
		reload:    reload,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Start adds the watches and begins the event loop. It does not block.
func (dw *DescriptorWatcher) Start(ctx context.Context) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.running {
		return nil
	}

	if err := dw.watcher.Add(dw.root); err != nil {
		return err
	}

	entries, err := os.ReadDir(dw.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() && dw.isGuildID(e.Name()) {
			dw.watchGuild(ctx, e.Name())
		}
	}

	logger.FromContext(ctx).Info(LogMsgWatching, "root", dw.root, "guilds", len(dw.watcher.WatchList())-1)
	dw.running = true
	go dw.run(ctx)
	return nil
}

// Stop ends the event loop and releases the watches.
func (dw *DescriptorWatcher) Stop() {
	dw.mu.Lock()
	if !dw.running {
		dw.mu.Unlock()
		_ = dw.watcher.Close()
		return
	}
	dw.running = false
	dw.mu.Unlock()

	close(dw.stopCh)
	<-dw.doneCh

	if err := dw.watcher.Close(); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgCloseFailed, "error", err)
	}
}

func (dw *DescriptorWatcher) watchGuild(ctx context.Context, guildID string) {
	if err := dw.watcher.Add(filepath.Join(dw.root, guildID)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgWatchFailed, "guild_id", guildID, "error", err)
	}
}

func (dw *DescriptorWatcher) run(ctx context.Context) {
	defer close(dw.doneCh)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-dw.stopCh:
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handleEvent(ctx, event)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			logger.FromContext(ctx).Error(LogMsgWatcherError, "error", err)
		case <-ticker.C:
			dw.processSettled(ctx)
		}
	}
}

func (dw *DescriptorWatcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	dir, base := filepath.Split(event.Name)
	dir = filepath.Clean(dir)

	// A new guild directory under the root.
	if dir == filepath.Clean(dw.root) {
		if event.Has(fsnotify.Create) && dw.isGuildID(base) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				dw.watchGuild(ctx, base)
			}
		}
		return
	}

	guildID := filepath.Base(dir)
	if base != domain.DescriptorFileName || filepath.Dir(dir) != filepath.Clean(dw.root) || !dw.isGuildID(guildID) {
		return
	}

	dw.mu.Lock()
	dw.pending[guildID] = time.Now()
	dw.mu.Unlock()
}

// processSettled reloads every guild whose descriptor has been quiet for the
// debounce window.
func (dw *DescriptorWatcher) processSettled(ctx context.Context) {
	dw.mu.Lock()
	now := time.Now()
	var settled []string
	for id, at := range dw.pending {
		if now.Sub(at) >= dw.debounce {
			settled = append(settled, id)
			delete(dw.pending, id)
		}
	}
	dw.mu.Unlock()

	log := logger.FromContext(ctx)
	for _, id := range settled {
		err := dw.reload(ctx, id)
		switch {
		case err == nil:
			log.Info(LogMsgReloaded, "guild_id", id)
		case errors.Is(err, domain.ErrReloadInProgress):
			// Try again once the running reload is done.
			dw.mu.Lock()
			dw.pending[id] = time.Now()
			dw.mu.Unlock()
		case errors.Is(err, domain.ErrNotReady):
			// Startup reads the file anyway.
		default:
			log.Warn(LogMsgReloadFailed, "guild_id", id, "error", err)
		}
	}
}
