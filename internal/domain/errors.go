package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Descriptor file errors
	ErrMsgConfigFormat     = "command list was improperly formatted"
	ErrMsgDuplicateCommand = "duplicate command name"

	// Storage errors
	ErrMsgStorageMissing = "guild storage not initialized"
	ErrMsgInvalidGuildID = "invalid guild id"

	// Platform errors
	ErrMsgPlatformSync = "platform command sync failed"

	// Lifecycle errors
	ErrMsgReloadInProgress = "a reload is already running for this guild"
	ErrMsgNotReady         = "bot has not finished starting"
	ErrMsgUnknownCommand   = "unknown command"

	// Configuration errors
	ErrMsgMissingToken = "BOT_TOKEN was not set"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrConfigFormat means commands.json is not a JSON array of command objects.
	ErrConfigFormat     = errors.New(ErrMsgConfigFormat)
	ErrDuplicateCommand = errors.New(ErrMsgDuplicateCommand)

	// ErrStorageMissing is an invariant violation: descriptors were read before
	// the guild was initialized.
	ErrStorageMissing = errors.New(ErrMsgStorageMissing)
	ErrInvalidGuildID = errors.New(ErrMsgInvalidGuildID)

	ErrPlatformSync = errors.New(ErrMsgPlatformSync)

	ErrReloadInProgress = errors.New(ErrMsgReloadInProgress)
	ErrNotReady         = errors.New(ErrMsgNotReady)
	ErrUnknownCommand   = errors.New(ErrMsgUnknownCommand)

	ErrMissingToken = errors.New(ErrMsgMissingToken)
)
