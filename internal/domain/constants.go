package domain

// Scope constants
const (
	// GlobalScope is the sentinel scope for commands visible in every guild.
	GlobalScope = "0"
)

// Descriptor file layout
const (
	DescriptorFileName  = "commands.json"
	EmptyDescriptorList = "[]"

	// DefaultResponseText is replied when a descriptor omits command_return_text.
	DefaultResponseText = "No response set."
)

// Descriptor keys with meaning to the bot; every other key is passed to the platform untouched.
const (
	DescriptorKeyName         = "name"
	DescriptorKeyDescription  = "description"
	DescriptorKeyResponseText = "command_return_text"
)

// Built-in command names
const (
	CommandHelp   = "help"
	CommandReload = "reload"
)
