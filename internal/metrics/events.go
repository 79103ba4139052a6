package metrics

import "time"

// resultLabel maps an error to the result label value
func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// RecordSync records one platform synchronize call
func RecordSync(kind string, started time.Time, err error) {
	RegistrySyncs.WithLabelValues(kind, resultLabel(err)).Inc()
	RegistrySyncDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// RecordInvocation records a slash command invocation. Guild-defined commands are
// collapsed into one label value to keep cardinality bounded.
func RecordInvocation(command string, builtin bool, err error) {
	if !builtin {
		command = CommandLabelCustom
	}
	CommandInvocations.WithLabelValues(command, resultLabel(err)).Inc()
}

// RecordGuildEvent records a handled guild lifecycle event
func RecordGuildEvent(event string) {
	GuildEvents.WithLabelValues(event).Inc()
}
