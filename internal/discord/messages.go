package discord

// Friendly message constants for Discord responses
const (
	MsgGuildOnly  = "🏠 **Guild Only**\nCommands only work inside a server."
	MsgNoCommands = "📭 This server has no commands yet."

	// Reload
	MsgReloadInProgress = "⏳ **Reload Already Running**\nWait for the current reload to finish."
	MsgNotReady         = "⏳ **Still Starting Up**\nTry again in a moment."
	MsgSyncFailed       = "📡 **Sync Failed**\nCommands were loaded but Discord did not accept them. Try /reload again."

	// Descriptor problems
	MsgConfigFormat     = "⚠️ **Invalid commands.json**\nThe command list was improperly formatted."
	MsgDuplicateCommand = "⚠️ **Duplicate Command**\nTwo commands share a name, or one uses a built-in name."

	MsgUnknownCommand = "❓ **Unknown Command**\nThis command isn't set up here. An admin may need to /reload."

	MsgGenericError = "❌ Something went wrong."
)

// Discord message limits
const (
	maxMessageLength = 2000
	truncationSuffix = "\n…"
)
