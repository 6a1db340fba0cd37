package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/whattodo/internal/match"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoEngine is returned when Run is called without a match engine.
var ErrNoEngine = errors.New("tui: match engine is required")

// Run starts the interactive finder on the engine and blocks until the user quits or
// ctx is canceled. The engine must be running (or about to run) in another goroutine.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if cfg.Engine == nil {
		return ErrNoEngine
	}
	if cfg.Results <= 0 {
		cfg.Results = defaultConfig().Results
	}

	rankings, unsubscribe := cfg.Engine.Subscribe()
	defer unsubscribe()

	m := newModel(cfg, cfg.Engine.Filter(), cfg.Engine.Policy(), rankings)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("finder: %w", err)
	}
	return nil
}

// NewConfig returns the default configuration for engine with opts applied.
func NewConfig(engine *match.Engine, opts ...Option) Config {
	cfg := defaultConfig()
	cfg.Engine = engine
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
