package registry

// Log messages
const (
	LogMsgGuildSkipped      = "Guild skipped during bootstrap"
	LogMsgBootstrapComplete = "Command registry bootstrapped"
	LogMsgGuildReloaded     = "Guild commands reloaded"
	LogMsgSyncFailed        = "Platform command sync failed"
)
