package bootstrap

import (
	"os"

	"kyarte_server/adapter/in/worker"
	"kyarte_server/config"

	"github.com/rs/zerolog"
)

// Worker runs the background note sweeper and calendar export loop.
type Worker struct {
	sweeper *worker.NoteSweeper
	deps    *Dependencies
}

// NewWorker builds the background process around a fresh dependency graph.
func NewWorker(cfg *config.Config) (*Worker, func(), error) {
	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		return nil, nil, err
	}

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("component", "worker").Logger()

	sweeperCfg := worker.DefaultSweeperConfig()
	if cfg.NoteSweepSchedule != "" {
		sweeperCfg.Schedule = cfg.NoteSweepSchedule
	}

	sweeper := worker.NewNoteSweeper(deps.NoteProcessor, deps.CalendarSync, sweeperCfg, zlog)

	return &Worker{sweeper: sweeper, deps: deps}, cleanup, nil
}

// Start launches the sweep schedule. It returns immediately.
func (w *Worker) Start() error {
	return w.sweeper.Start()
}

// Stop waits for any in-flight sweep to finish.
func (w *Worker) Stop() {
	w.sweeper.Stop()
}
