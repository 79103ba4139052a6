package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Command metric names
const (
	MetricNameCommandInvocations = "guild_command_invocations_total"
	MetricNameInstalledCommands  = "guild_commands_installed"
)

// Registry metric names
const (
	MetricNameRegistrySyncs        = "registry_syncs_total"
	MetricNameRegistrySyncDuration = "registry_sync_duration_seconds"
	MetricNameStaleCommandsPurged  = "registry_stale_commands_purged_total"
	MetricNameCompileFailures      = "registry_compile_failures_total"
)

// Lifecycle metric names
const (
	MetricNameGuildEvents     = "guild_lifecycle_events_total"
	MetricNameReloadsRejected = "guild_reloads_rejected_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Command metric help text
const (
	HelpTextCommandInvocations = "Total number of slash command invocations"
	HelpTextInstalledCommands  = "Number of compiled guild commands in the in-memory table"
)

// Registry metric help text
const (
	HelpTextRegistrySyncs        = "Total number of platform synchronize calls"
	HelpTextRegistrySyncDuration = "Platform synchronize call latency in seconds"
	HelpTextStaleCommandsPurged  = "Total number of stale commands removed from the platform on reload"
	HelpTextCompileFailures      = "Total number of guild descriptor lists that failed to load or compile"
)

// Lifecycle metric help text
const (
	HelpTextGuildEvents     = "Total number of guild lifecycle events handled"
	HelpTextReloadsRejected = "Total number of reloads rejected because one was already running"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelResult  = "result"
	LabelCommand = "command"
	LabelEvent   = "event"
)

// ============================================================================
// Label Values
// ============================================================================

// Result label values
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// CommandLabelCustom stands in for every guild-defined command name
const CommandLabelCustom = "custom"

// Sync kind label values
const (
	SyncKindBootstrap = "bootstrap"
	SyncKindReload    = "reload"
)

// Guild event label values
const (
	GuildEventStartup = "startup"
	GuildEventJoin    = "join"
	GuildEventLeave   = "leave"
	GuildEventReload  = "reload"
)

// HTTPLatencyBuckets are histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1}

// SyncLatencyBuckets cover Discord REST round trips, including rate-limit waits
var SyncLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}
