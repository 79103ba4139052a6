package watcher

// Log messages
const (
	LogMsgWatching     = "Watching guild descriptors"
	LogMsgWatchFailed  = "Failed to watch guild directory"
	LogMsgWatcherError = "Descriptor watcher error"
	LogMsgCloseFailed  = "Failed to close descriptor watcher"
	LogMsgReloaded     = "Reloaded guild after descriptor edit"
	LogMsgReloadFailed = "Reload after descriptor edit failed"
)
