package tui

import (
	"context"

	"github.com/Veraticus/whattodo/internal/match"
)

// Deleter removes activities from the catalog.
type Deleter interface {
	DeleteActivity(ctx context.Context, id int64) error
}

// Config holds TUI configuration.
type Config struct {
	Theme    Theme
	Engine   *match.Engine
	Store    Deleter
	Results  int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:   DefaultTheme,
		Results: 10,
	}
}

// WithTheme sets the theme.
func WithTheme(theme Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithStore enables deleting activities from the finder.
func WithStore(store Deleter) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithResults sets how many ranked activities are shown.
func WithResults(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Results = n
		}
	}
}

// WithFullHelp starts with the full key help expanded.
func WithFullHelp() Option {
	return func(c *Config) {
		c.ShowHelp = true
	}
}
