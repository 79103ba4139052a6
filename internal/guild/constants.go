package guild

// File permissions for guild storage
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// guildIDRule is the validator tag for a Discord snowflake.
const guildIDRule = "required,number,max=20"

// Log messages
const (
	LogMsgGuildInitialized = "Initialized guild storage"
	LogMsgGuildRepaired    = "Restored missing descriptor file"
	LogMsgGuildDestroyed   = "Removed guild storage"
)
