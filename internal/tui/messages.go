package tui

import "github.com/Veraticus/whattodo/internal/match"

// rankingMsg carries a ranking published by the engine.
type rankingMsg struct {
	ranking match.Ranking
}

// rankingClosedMsg reports that the engine stopped publishing.
type rankingClosedMsg struct{}

// deletedMsg reports the outcome of deleting an activity.
type deletedMsg struct {
	err  error
	name string
}
