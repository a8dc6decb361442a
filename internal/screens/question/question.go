// Package question plays one section: it asks each question, shows the
// explanation, summarises the run and settles any due interstitial.
package question

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/ads"
	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/quiz"
	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/tier"
	"github.com/sengokuquiz/sengoku/internal/ui/components"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
	"github.com/sengokuquiz/sengoku/internal/ui/theme"
)

type phase int

const (
	phaseAsking phase = iota
	phaseFeedback
	phaseSummary
	phaseInterstitial
)

// interstitialDelay is how many seconds an interstitial stays up before it
// can be closed.
const interstitialDelay = 5

// countdownMsg ticks the interstitial countdown once per second.
type countdownMsg time.Time

func countdown() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return countdownMsg(t) })
}

// Screen drives a quiz.Session for one section.
type Screen struct {
	env     *shared.Env
	session *quiz.Session
	choice  components.MultiChoice
	phase   phase
	result  quiz.Result

	confirmQuit bool

	ad      ads.Ad
	wait    int
	spinner spinner.Model
}

var _ screen.Screen = (*Screen)(nil)

// New starts a session over set.
func New(env *shared.Env, set questionbank.Set) *Screen {
	opts := []quiz.Option{quiz.WithLogger(env.Log())}
	if env.Journal != nil {
		opts = append(opts, quiz.WithJournal(env.Journal))
	}
	s := &Screen{
		env:     env,
		session: quiz.New(context.Background(), set, env.Machine, opts...),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary))),
	}
	s.loadQuestion()
	return s
}

func (s *Screen) loadQuestion() {
	q, ok := s.session.CurrentQuestion()
	if !ok || s.session.Phase() == quiz.Complete {
		s.phase = phaseSummary
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options)
	s.phase = phaseAsking
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string {
	return fmt.Sprintf("%s · Section %d", s.session.Tier().DisplayName(), s.session.SectionIndex()+1)
}

// HandlesEscape keeps the app from popping a section mid-play.
func (s *Screen) HandlesEscape() bool { return true }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownMsg:
		if s.phase != phaseInterstitial || s.wait == 0 {
			return s, nil
		}
		s.wait--
		if s.wait > 0 {
			return s, countdown()
		}
		return s, nil

	case spinner.TickMsg:
		if s.phase != phaseInterstitial || s.wait == 0 {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	ctx := context.Background()
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y":
			s.session.Abandon(ctx)
			return router.Back
		case "n", "esc":
			s.confirmQuit = false
		}
		return nil
	}

	switch s.phase {
	case phaseAsking:
		if key == "esc" {
			s.confirmQuit = true
			return nil
		}
		s.choice = s.choice.Update(msg)
		if !s.choice.Submitted {
			return nil
		}
		res, ok := s.session.Submit(ctx, s.choice.ChosenIndex)
		if !ok {
			s.choice.Reset()
			return nil
		}
		s.result = res
		s.choice.Reveal(res.CorrectIndex)
		s.phase = phaseFeedback

	case phaseFeedback:
		switch key {
		case "esc":
			s.confirmQuit = true
		case "enter", "space", "n":
			s.session.Advance(ctx)
			s.loadQuestion()
		}

	case phaseSummary:
		switch key {
		case "enter", "space", "esc":
			return s.leave(ctx)
		}

	case phaseInterstitial:
		if s.wait > 0 {
			return nil
		}
		switch key {
		case "enter", "space", "esc":
			s.env.Ads.Dismiss(ctx)
			return router.Back
		}
	}
	return nil
}

// leave returns to the section grid, showing the checkpoint interstitial
// first when one is due.
func (s *Screen) leave(ctx context.Context) tea.Cmd {
	if s.env.Ads == nil {
		return router.Back
	}
	ad, shown := s.env.Ads.ConsumeCheckpoint(ctx, s.env.Machine)
	if !shown {
		return router.Back
	}
	s.ad = ad
	s.phase = phaseInterstitial
	s.wait = interstitialDelay
	return tea.Batch(countdown(), s.spinner.Tick)
}

func (s *Screen) View(width, height int) string {
	var body string
	switch s.phase {
	case phaseAsking, phaseFeedback:
		body = s.viewQuestion(width)
	case phaseSummary:
		body = s.viewSummary()
	case phaseInterstitial:
		body = s.viewInterstitial(width)
	}
	if s.confirmQuit {
		body += "\n\n" + theme.Alert.Render("Leave this section? Answers so far are kept.  (y/n)")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *Screen) viewQuestion(width int) string {
	t := s.session.Tier()
	var b strings.Builder

	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d/%d   Section %d/%d   %s %d/%d",
		s.session.Index()+1, s.session.Len(),
		s.session.SectionIndex()+1, tier.SectionsPerTier,
		t.DisplayName(), s.env.Machine.Correct(t), t.RequiredCorrect())))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.phase == phaseFeedback {
		b.WriteString("\n")
		if s.result.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. The answer was " + s.result.CorrectAnswer + "."))
		}
		if s.result.Explanation != "" {
			b.WriteString("\n\n")
			b.WriteString(theme.Body.Width(min(width-8, 72)).Render(s.result.Explanation))
		}
	}
	return b.String()
}

func (s *Screen) viewSummary() string {
	t := s.session.Tier()
	var b strings.Builder

	if s.session.Len() == 0 {
		b.WriteString(theme.Title.Render(fmt.Sprintf("Section %d", s.session.SectionIndex()+1)))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("No questions have been written for this section yet."))
		return b.String()
	}

	b.WriteString(theme.Title.Render(fmt.Sprintf("Section %d complete!", s.session.SectionIndex()+1)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Correct this section: %d/%d", s.session.CorrectCount(), s.session.Len())))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%s progress: %d/%d", t.DisplayName(), s.env.Machine.Correct(t), t.RequiredCorrect())))

	if s.env.Machine.CompletedSections(t) >= tier.SectionsPerTier {
		b.WriteString("\n\n")
		if next, ok := t.Next(); ok {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("%s cleared! %s awaits.", t.DisplayName(), next.DisplayName())))
		} else {
			b.WriteString(theme.Correct.Render("The realm is yours."))
		}
	}
	return b.String()
}

func (s *Screen) viewInterstitial(width int) string {
	card := theme.Alert.Width(min(width-8, 64)).Render(
		theme.Title.Render(s.ad.Headline) + "\n\n" +
			theme.Body.Render(s.ad.Body) + "\n\n" +
			theme.Hint.Render(s.ad.Action),
	)
	status := theme.Hint.Render("Press Enter to continue")
	if s.wait > 0 {
		status = s.spinner.View() + theme.Hint.Render(fmt.Sprintf(" You can continue in %ds", s.wait))
	}
	return card + "\n\n" + status
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{{Key: "Y", Description: "Leave"}, {Key: "N", Description: "Stay"}}
	}
	switch s.phase {
	case phaseAsking:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Next question"}, {Key: "Esc", Description: "Leave"}}
	case phaseInterstitial:
		if s.wait > 0 {
			return nil
		}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Back to sections"}}
}
