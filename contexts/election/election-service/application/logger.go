package application

import (
	"log/slog"

	"ballotbox/contexts/election/election-service/ports"
)

// ResolveLogger guarantees a non-nil logger for application code paths.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// ResolveMetrics guarantees a non-nil recorder.
func ResolveMetrics(metrics ports.MetricsRecorder) ports.MetricsRecorder {
	if metrics == nil {
		return ports.NopMetrics{}
	}
	return metrics
}
