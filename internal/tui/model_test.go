package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	err     error
	deleted []int64
}

func (f *fakeDeleter) DeleteActivity(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func newTestModel(t *testing.T, store Deleter) (Model, chan match.Ranking) {
	t.Helper()
	policy, err := match.NewPolicy(nil)
	require.NoError(t, err)

	cfg := defaultConfig()
	cfg.Store = store
	ch := make(chan match.Ranking, 1)
	return newModel(cfg, match.NewFilterState(), policy, ch), ch
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleRanking(gen int64) match.Ranking {
	acts := []model.Activity{
		{ID: 1, Name: "Museum", Price: model.PriceCheap, Weather: model.WeatherRainy},
		{ID: 2, Name: "Picnic", Price: model.PriceCheap, Weather: model.WeatherSunny},
	}
	sel := match.EmptySelection()
	sel[model.FieldWeather] = model.Ordinal(model.WeatherRainy)
	modes := match.AllExclusive()
	return match.Ranking{
		Results:    match.Rank(acts, sel, modes),
		Selection:  sel,
		Modes:      modes,
		Generation: gen,
	}
}

func TestModel_CyclesFieldValues(t *testing.T) {
	m, _ := newTestModel(t, nil)

	tests := []struct {
		key  tea.KeyMsg
		name string
		want model.Ordinal
	}{
		{name: "any to first", key: tea.KeyMsg{Type: tea.KeyRight}, want: model.Ordinal(model.PriceFree)},
		{name: "first to second", key: tea.KeyMsg{Type: tea.KeyRight}, want: model.Ordinal(model.PriceCheap)},
		{name: "back to first", key: tea.KeyMsg{Type: tea.KeyLeft}, want: model.Ordinal(model.PriceFree)},
		{name: "first back to any", key: tea.KeyMsg{Type: tea.KeyLeft}, want: model.Unset},
		{name: "any back to last", key: runes("h"), want: model.Ordinal(model.PriceExpensive)},
		{name: "last wraps to any", key: runes("l"), want: model.Unset},
	}

	for _, tt := range tests {
		m, _ = press(t, m, tt.key)
		assert.Equal(t, tt.want, m.filter.Get(model.FieldPrice), tt.name)
	}
}

func TestModel_CursorMovesBetweenFields(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, model.FieldPrice, m.cursor, "cursor stays on the first field")

	for i := 0; i < model.FieldCount+2; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, model.FieldPeople, m.cursor, "cursor stops on the last field")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, model.Ordinal(model.PeopleOne), m.filter.Get(model.FieldPeople))
	assert.False(t, m.filter.Get(model.FieldPrice).IsSet())

	m, _ = press(t, m, runes("x"))
	assert.False(t, m.filter.Get(model.FieldPeople).IsSet())
}

func TestModel_ClearAll(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.NoError(t, m.filter.Set(model.FieldWeather, model.Ordinal(model.WeatherSunny)))
	require.NoError(t, m.filter.Set(model.FieldTime, model.Ordinal(model.TimeQuick)))

	m, _ = press(t, m, runes("X"))
	assert.Equal(t, match.EmptySelection(), m.filter.Snapshot())
	assert.Equal(t, "Filter cleared", m.status)
}

func TestModel_ToggleMode(t *testing.T) {
	m, _ := newTestModel(t, nil)
	require.Equal(t, match.Inclusive, m.policy.Mode(model.FieldPrice))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, match.Exclusive, m.policy.Mode(model.FieldPrice))
	assert.Equal(t, "Price range is now exclusive", m.status)
	assert.Equal(t, match.Exclusive, m.policy.Mode(model.FieldTime), "other fields unchanged")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, match.Inclusive, m.policy.Mode(model.FieldPrice))
}

func TestModel_RankingMessages(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.Contains(t, m.View(), "Loading activities")

	next, cmd := m.Update(rankingMsg{ranking: sampleRanking(2)})
	m = next.(Model)
	assert.NotNil(t, cmd, "keeps listening after a ranking")

	view := m.View()
	assert.Contains(t, view, "1 of 2 activities match")
	assert.Contains(t, view, "[4/4] Museum")
	assert.Contains(t, view, "[3/4] Picnic")
	assert.Contains(t, view, "misses weather")

	// An older generation never replaces a newer one.
	stale := match.Ranking{Generation: 1}
	next, _ = m.Update(rankingMsg{ranking: stale})
	m = next.(Model)
	assert.Equal(t, int64(2), m.ranking.Generation)
}

func TestModel_WaitsOnSubscription(t *testing.T) {
	m, ch := newTestModel(t, nil)

	ch <- sampleRanking(1)
	msg := m.Init()()
	got, ok := msg.(rankingMsg)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.ranking.Generation)

	close(ch)
	_, ok = m.Init()().(rankingClosedMsg)
	assert.True(t, ok)

	next, _ := m.Update(rankingClosedMsg{})
	assert.Contains(t, next.(Model).View(), "Catalog updates stopped")
}

func TestModel_EmptyCatalog(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, _ := m.Update(rankingMsg{ranking: match.Ranking{Generation: 1}})
	assert.Contains(t, next.(Model).View(), "The catalog is empty")
}

func TestModel_DeleteTopResult(t *testing.T) {
	t.Run("deletes the best match", func(t *testing.T) {
		store := &fakeDeleter{}
		m, _ := newTestModel(t, store)
		next, _ := m.Update(rankingMsg{ranking: sampleRanking(1)})
		m = next.(Model)

		m, cmd := press(t, m, runes("d"))
		require.NotNil(t, cmd)
		assert.Equal(t, `Deleting "Museum"...`, m.status)

		msg := cmd()
		assert.Equal(t, []int64{1}, store.deleted)

		next, _ = m.Update(msg)
		m = next.(Model)
		assert.Equal(t, `Deleted "Museum"`, m.status)
		assert.NoError(t, m.lastError)
	})

	t.Run("reports store errors", func(t *testing.T) {
		store := &fakeDeleter{err: errors.New("disk full")}
		m, _ := newTestModel(t, store)
		next, _ := m.Update(rankingMsg{ranking: sampleRanking(1)})
		m = next.(Model)

		_, cmd := press(t, m, runes("d"))
		next, _ = m.Update(cmd())
		m = next.(Model)
		require.Error(t, m.lastError)
		assert.Contains(t, m.View(), "disk full")
	})

	t.Run("nothing ranked", func(t *testing.T) {
		store := &fakeDeleter{}
		m, _ := newTestModel(t, store)
		m, cmd := press(t, m, runes("d"))
		assert.Nil(t, cmd)
		assert.Equal(t, "Nothing to delete", m.status)
		assert.Empty(t, store.deleted)
	})

	t.Run("no store", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		next, _ := m.Update(rankingMsg{ranking: sampleRanking(1)})
		m, cmd := press(t, next.(Model), runes("d"))
		assert.Nil(t, cmd)
		assert.Equal(t, "Deleting is not available", m.status)
	})
}

func TestModel_QuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)

	m, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestRun_RequiresEngine(t *testing.T) {
	err := Run(context.Background(), NewConfig(nil), nil, nil)
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestNewConfig(t *testing.T) {
	store := &fakeDeleter{}
	cfg := NewConfig(nil, WithStore(store), WithResults(3), WithResults(-1), WithFullHelp())
	assert.Equal(t, 3, cfg.Results)
	assert.True(t, cfg.ShowHelp)
	assert.Same(t, store, cfg.Store)
	assert.Equal(t, DefaultTheme.Primary, cfg.Theme.Primary)
}
