package bootstrap

import (
	"context"
	"io"
	"log/slog"

	electionservice "ballotbox/contexts/election/election-service"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/console"
	"ballotbox/internal/platform/logging"
	"ballotbox/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type SessionOptions struct {
	ConfigPath string
	JSON       bool
	AssumeYes  bool
	Prompt     string
	In         io.Reader
	Out        io.Writer
	LogOut     io.Writer
}

type SessionApp struct {
	Module  electionservice.Module
	Metrics *metrics.Prometheus
	session *console.Session
	logger  *slog.Logger
}

func BuildSession(opts SessionOptions) (*SessionApp, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logOut := opts.LogOut
	if logOut == nil {
		logOut = io.Discard
	}
	logger := logging.New(logOut, cfg.ServiceName, cfg.LogLevel, cfg.LogFormat).With("process", "session")

	recorder := metrics.NewPrometheus(cfg.MetricsNamespace)
	module := electionservice.NewInMemoryModule(logger, recorder)

	session := console.NewSession(module.Handler, opts.In, opts.Out, console.Options{
		JSON:                     opts.JSON || cfg.OutputFormat == "json",
		Color:                    cfg.OutputColor && !opts.JSON,
		AssumeYes:                opts.AssumeYes,
		RequireResetConfirmation: cfg.RequireResetConfirmation,
		Prompt:                   opts.Prompt,
		Metrics:                  recorder,
		Logger:                   logger,
	})
	return &SessionApp{
		Module:  module,
		Metrics: recorder,
		session: session,
		logger:  logger,
	}, nil
}

func (a *SessionApp) Run(ctx context.Context) error {
	a.logger.Info("session app started",
		"event", "bootstrap_session_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"session_id", a.session.ID(),
	)
	return a.session.Run(ctx)
}
