package tui

import (
	"context"
	"time"

	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// waitForRanking blocks until the engine publishes again.
func waitForRanking(ch <-chan match.Ranking) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return rankingClosedMsg{}
		}
		return rankingMsg{ranking: r}
	}
}

// deleteActivity removes a from the store. The engine sees the deletion as a new
// snapshot, so no ranking is touched here.
func deleteActivity(store Deleter, a model.Activity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return deletedMsg{name: a.Name, err: store.DeleteActivity(ctx, a.ID)}
	}
}
