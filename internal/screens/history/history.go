// Package history lists the sections a player has finished or left, newest
// first, with the answers given in each.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/quiz"
	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/store"
	"github.com/sengokuquiz/sengoku/internal/tier"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
	"github.com/sengokuquiz/sengoku/internal/ui/theme"
)

// maxRecords caps how many journal entries are read back.
const maxRecords = 50

type loadedMsg struct {
	records []store.SessionEvent
	err     error
}

type answersMsg struct {
	seq     int64
	answers []store.AnswerEvent
	err     error
}

// Screen shows finished and abandoned sections.
type Screen struct {
	records  shared.Records
	sessions []store.SessionEvent
	answers  map[int64][]store.AnswerEvent
	selected int
	expanded map[int64]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New(records shared.Records) *Screen {
	return &Screen{
		records:  records,
		answers:  make(map[int64][]store.AnswerEvent),
		expanded: make(map[int64]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.records.QuerySessionEvents(context.Background(),
			store.QueryOpts{Newest: true, Limit: maxRecords})
		if err != nil {
			return loadedMsg{err: err}
		}
		finished := slices.DeleteFunc(events, func(e store.SessionEvent) bool {
			return e.Action == quiz.ActionStart
		})
		return loadedMsg{records: finished}
	}
}

// loadAnswers reads the answers journaled just before the session's closing
// event. A session never has more than a section's worth of them.
func (s *Screen) loadAnswers(e store.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		events, err := s.records.QueryAnswerEvents(context.Background(),
			store.QueryOpts{Before: e.Sequence, Newest: true, Limit: tier.SectionSize})
		if err != nil {
			return answersMsg{seq: e.Sequence, err: err}
		}
		mine := slices.DeleteFunc(events, func(a store.AnswerEvent) bool {
			return a.SessionID != e.SessionID
		})
		slices.Reverse(mine)
		return answersMsg{seq: e.Sequence, answers: mine}
	}
}

func (s *Screen) Title() string {
	return "Battle Records"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.sessions = msg.records
		}
		s.loaded = true
		return s, nil

	case answersMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.answers[msg.seq] = msg.answers
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			e := s.sessions[s.selected]
			s.expanded[e.Sequence] = !s.expanded[e.Sequence]
			if _, ok := s.answers[e.Sequence]; s.expanded[e.Sequence] && !ok {
				return s, s.loadAnswers(e)
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if s.errMsg != "" {
		return "\n\n" + center(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg)
	}
	if !s.loaded {
		return "\n\n" + center(dim, "Unrolling the scrolls...")
	}
	if len(s.sessions) == 0 {
		return "\n\n" + center(dim.Italic(true), "No battles fought yet. Pick a section to begin!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, e := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(center(style, prefix+recordLine(e)))
		b.WriteString("\n")

		if !s.expanded[e.Sequence] {
			continue
		}
		answers, ok := s.answers[e.Sequence]
		switch {
		case !ok:
			b.WriteString(center(dim, "    Loading answers..."))
			b.WriteString("\n")
		case len(answers) == 0:
			b.WriteString(center(dim.Italic(true), "    No answers given"))
			b.WriteString("\n")
		default:
			for _, a := range answers {
				b.WriteString(center(answerStyle(a), answerLine(a)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func recordLine(e store.SessionEvent) string {
	name := e.Tier
	if t, ok := tier.Parse(e.Tier); ok {
		name = t.DisplayName()
	}
	outcome := "cleared"
	if e.Action == quiz.ActionAbandon {
		outcome = "withdrew"
	}
	return fmt.Sprintf("%s  %s, section %d  %s  %d/%d correct  %d:%02d",
		e.Timestamp.Format("Jan 02, 2006"), name, e.Section+1, outcome,
		e.CorrectAnswers, e.QuestionsServed, e.DurationSecs/60, e.DurationSecs%60)
}

func answerLine(a store.AnswerEvent) string {
	mark := "✓"
	if !a.Correct {
		mark = "✗"
	}
	line := fmt.Sprintf("    %s %s  %s", mark, a.QuestionText, a.ChosenAnswer)
	if !a.Correct {
		line += fmt.Sprintf(" (answer: %s)", a.CorrectAnswer)
	}
	return line
}

func answerStyle(a store.AnswerEvent) lipgloss.Style {
	if a.Correct {
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
	return lipgloss.NewStyle().Foreground(theme.Error)
}
