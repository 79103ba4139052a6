package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Command Metrics
var (
	CommandInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandInvocations,
			Help: HelpTextCommandInvocations,
		},
		[]string{LabelCommand, LabelResult},
	)

	InstalledCommands = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameInstalledCommands,
			Help: HelpTextInstalledCommands,
		},
	)
)

// Registry Metrics
var (
	RegistrySyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRegistrySyncs,
			Help: HelpTextRegistrySyncs,
		},
		[]string{LabelKind, LabelResult},
	)

	RegistrySyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRegistrySyncDuration,
			Help:    HelpTextRegistrySyncDuration,
			Buckets: SyncLatencyBuckets,
		},
		[]string{LabelKind},
	)

	StaleCommandsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStaleCommandsPurged,
			Help: HelpTextStaleCommandsPurged,
		},
	)

	CompileFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCompileFailures,
			Help: HelpTextCompileFailures,
		},
	)
)

// Lifecycle Metrics
var (
	GuildEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGuildEvents,
			Help: HelpTextGuildEvents,
		},
		[]string{LabelEvent},
	)

	ReloadsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReloadsRejected,
			Help: HelpTextReloadsRejected,
		},
	)
)
