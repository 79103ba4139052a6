package lifecycle

// ReloadConfirmation is replied after a successful /reload.
const ReloadConfirmation = "This guild's commands have been reloaded."

// Built-in command descriptions
const (
	HelpDescription   = "List commands for this guild"
	ReloadDescription = "Reload this guild's commands."
)

// Log messages
const (
	LogMsgStartupBegin       = "Startup: bootstrapping guild commands"
	LogMsgStartupRepeated    = "Startup already ran, ignoring"
	LogMsgStartupGuildFailed = "Startup: guild commands not loaded"
	LogMsgEventBeforeReady   = "Guild event before startup finished, ignoring"
	LogMsgGuildJoined        = "Joined guild"
	LogMsgGuildLeft          = "Left guild"
	LogMsgReloadRejected     = "Reload already running for guild"
)
