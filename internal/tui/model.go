package tui

import (
	"fmt"

	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the interactive finder. It edits the engine's filter and comparison
// policy and renders whatever ranking the engine publishes last.
type Model struct {
	lastError error
	filter    *match.FilterState
	policy    *match.Policy
	store     Deleter
	rankings  <-chan match.Ranking
	status    string
	theme     Theme
	help      help.Model
	keymap    KeyMap
	ranking   match.Ranking
	results   int
	cursor    model.Field
	width     int
	height    int
	closed    bool
	quitting  bool
}

func newModel(cfg Config, filter *match.FilterState, policy *match.Policy, rankings <-chan match.Ranking) Model {
	h := help.New()
	h.ShowAll = cfg.ShowHelp

	return Model{
		filter:   filter,
		policy:   policy,
		store:    cfg.Store,
		rankings: rankings,
		theme:    cfg.Theme,
		help:     h,
		keymap:   DefaultKeyMap(),
		results:  cfg.Results,
		cursor:   model.FieldPrice,
	}
}

// Init starts listening for rankings.
func (m Model) Init() tea.Cmd {
	return waitForRanking(m.rankings)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case rankingMsg:
		if msg.ranking.Generation >= m.ranking.Generation {
			m.ranking = msg.ranking
		}
		return m, waitForRanking(m.rankings)

	case rankingClosedMsg:
		m.closed = true

	case deletedMsg:
		if msg.err != nil {
			m.lastError = fmt.Errorf("delete %q: %w", msg.name, msg.err)
			m.status = ""
		} else {
			m.lastError = nil
			m.status = fmt.Sprintf("Deleted %q", msg.name)
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if int(m.cursor) < model.FieldCount-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Next):
		m.setValue(nextValue(m.cursor, m.filter.Get(m.cursor)))

	case key.Matches(msg, m.keymap.Prev):
		m.setValue(prevValue(m.cursor, m.filter.Get(m.cursor)))

	case key.Matches(msg, m.keymap.Clear):
		m.setValue(model.Unset)

	case key.Matches(msg, m.keymap.ClearAll):
		m.filter.Clear()
		m.lastError = nil
		m.status = "Filter cleared"

	case key.Matches(msg, m.keymap.ToggleMode):
		mode, err := m.policy.Toggle(m.cursor)
		if err != nil {
			m.lastError = err
			break
		}
		m.lastError = nil
		m.status = fmt.Sprintf("%s is now %s", m.cursor.Title(), mode)

	case key.Matches(msg, m.keymap.Delete):
		cmd := m.deleteTop()
		return m, cmd
	}

	return m, nil
}

func (m *Model) setValue(o model.Ordinal) {
	var err error
	if o.IsSet() {
		err = m.filter.Set(m.cursor, o)
	} else {
		err = m.filter.Unset(m.cursor)
	}
	if err != nil {
		m.lastError = err
		return
	}
	m.lastError = nil
	m.status = ""
}

func (m *Model) deleteTop() tea.Cmd {
	if m.store == nil {
		m.status = "Deleting is not available"
		return nil
	}
	top, ok := m.ranking.Top()
	if !ok {
		m.status = "Nothing to delete"
		return nil
	}
	m.status = fmt.Sprintf("Deleting %q...", top.Activity.Name)
	return deleteActivity(m.store, top.Activity)
}

// nextValue cycles ANY -> first value -> ... -> last value -> ANY.
func nextValue(f model.Field, o model.Ordinal) model.Ordinal {
	if !o.IsSet() {
		return 0
	}
	if int(o) >= f.Cardinality()-1 {
		return model.Unset
	}
	return o + 1
}

func prevValue(f model.Field, o model.Ordinal) model.Ordinal {
	switch {
	case !o.IsSet():
		return model.Ordinal(f.Cardinality() - 1)
	case o == 0:
		return model.Unset
	default:
		return o - 1
	}
}
