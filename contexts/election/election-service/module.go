package electionservice

import (
	"log/slog"

	consoleadapter "ballotbox/contexts/election/election-service/adapters/console"
	"ballotbox/contexts/election/election-service/adapters/memory"
	"ballotbox/contexts/election/election-service/application/commands"
	"ballotbox/contexts/election/election-service/application/queries"
	"ballotbox/contexts/election/election-service/ports"
)

type Module struct {
	Handler consoleadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Election ports.UnitOfWork
	Reader   ports.ElectionReader
	Clock    ports.Clock
	Metrics  ports.MetricsRecorder
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	electionUseCase := commands.ElectionUseCase{
		Election: deps.Election,
		Clock:    deps.Clock,
		Metrics:  deps.Metrics,
		Logger:   deps.Logger,
	}
	presentationUseCase := queries.PresentationUseCase{
		Election: deps.Reader,
		Clock:    deps.Clock,
	}
	return Module{
		Handler: consoleadapter.Handler{
			Election:     electionUseCase,
			Presentation: presentationUseCase,
			Logger:       deps.Logger,
		},
	}
}

// NewInMemoryModule builds an isolated election backed by a fresh store.
func NewInMemoryModule(logger *slog.Logger, metrics ports.MetricsRecorder) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Election: store,
		Reader:   store,
		Clock:    store,
		Metrics:  metrics,
		Logger:   logger,
	})
	module.Store = store
	return module
}
