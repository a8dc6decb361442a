// Package home is the rank and section picker the game opens on.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sengokuquiz/sengoku/internal/questionbank"
	"github.com/sengokuquiz/sengoku/internal/router"
	"github.com/sengokuquiz/sengoku/internal/screen"
	"github.com/sengokuquiz/sengoku/internal/screens/history"
	"github.com/sengokuquiz/sengoku/internal/screens/plans"
	"github.com/sengokuquiz/sengoku/internal/screens/question"
	"github.com/sengokuquiz/sengoku/internal/screens/shared"
	"github.com/sengokuquiz/sengoku/internal/tier"
	"github.com/sengokuquiz/sengoku/internal/ui/components"
	"github.com/sengokuquiz/sengoku/internal/ui/layout"
	"github.com/sengokuquiz/sengoku/internal/ui/theme"
)

// gridColumns is the number of section cells per row.
const gridColumns = 5

// Screen shows one tab per rank and a grid of that rank's sections.
type Screen struct {
	env      *shared.Env
	selected tier.Tier
	cursor   int
	// followed is the active tier the tabs last synced to.
	followed tier.Tier
	notice   string
}

var _ screen.Screen = (*Screen)(nil)

// New opens on the player's active tier with the cursor on its current section.
func New(env *shared.Env) *Screen {
	cur := env.Machine.CurrentTier()
	return &Screen{
		env:      env,
		selected: cur,
		cursor:   env.Machine.CurrentSectionIndex(cur),
		followed: cur,
	}
}

// Init runs whenever the screen comes back into view. A promotion while a
// section was being played moves the tabs to the new rank.
func (h *Screen) Init() tea.Cmd {
	cur := h.env.Machine.CurrentTier()
	if cur != h.followed {
		h.notice = fmt.Sprintf("%s unlocked!", cur.DisplayName())
		h.followed = cur
		h.selected = cur
		h.cursor = h.env.Machine.CurrentSectionIndex(cur)
	}
	if !h.env.Machine.IsUnlocked(h.selected) {
		h.selected = cur
	}
	return nil
}

func (h *Screen) Title() string { return "Campaign" }

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "tab", "]":
		h.switchTier(1)
	case "shift+tab", "[":
		h.switchTier(-1)
	case "left", "h":
		if h.cursor > 0 {
			h.cursor--
		}
	case "right", "l":
		if h.cursor < tier.SectionsPerTier-1 {
			h.cursor++
		}
	case "up", "k":
		if h.cursor >= gridColumns {
			h.cursor -= gridColumns
		}
	case "down", "j":
		if h.cursor+gridColumns < tier.SectionsPerTier {
			h.cursor += gridColumns
		}
	case "enter", "space":
		return h, h.play()
	case "p":
		if h.env.Premium != nil {
			h.notice = ""
			return h, router.To(plans.New(h.env))
		}
	case "r":
		if h.env.Records != nil {
			h.notice = ""
			return h, router.To(history.New(h.env.Records))
		}
	case "q":
		return h, tea.Quit
	}
	return h, nil
}

// switchTier moves the tab by dir, skipping locked tiers and wrapping.
func (h *Screen) switchTier(dir int) {
	all := tier.All()
	for step := 1; step < len(all); step++ {
		i := (int(h.selected) + dir*step + len(all)) % len(all)
		if h.env.Machine.IsUnlocked(all[i]) {
			h.selected = all[i]
			h.cursor = h.env.Machine.CurrentSectionIndex(all[i])
			h.notice = ""
			return
		}
	}
}

func (h *Screen) play() tea.Cmd {
	if h.cell(h.cursor) == cellLocked {
		h.notice = fmt.Sprintf("Clear section %d first.", h.env.Machine.CompletedSections(h.selected)+1)
		return nil
	}
	h.notice = ""
	set, ok := h.env.Bank.Section(h.selected, h.cursor)
	if !ok {
		set = questionbank.Set{Tier: h.selected, Index: h.cursor}
	}
	return router.To(question.New(h.env, set))
}

type cellState int

const (
	cellAvailable cellState = iota
	cellComplete
	cellLocked
)

// cell reports whether section i of the selected tier is cleared, playable
// or locked. Cleared sections stay replayable.
func (h *Screen) cell(i int) cellState {
	done := h.env.Machine.CompletedSections(h.selected)
	switch {
	case i < done:
		return cellComplete
	case i > done:
		return cellLocked
	default:
		return cellAvailable
	}
}

func (h *Screen) View(width, height int) string {
	t := h.selected
	parts := []string{
		h.renderTabs(),
		theme.Subtitle.Render("Battle of " + t.Battle()),
		components.ProgressBar{
			Label: t.DisplayName(),
			Count: h.env.Machine.Correct(t),
			Goal:  t.RequiredCorrect(),
			Width: min(width-4, 60),
		}.View(),
		theme.Hint.Render(fmt.Sprintf("Sections cleared: %d/%d", h.env.Machine.CompletedSections(t), tier.SectionsPerTier)),
		h.renderGrid(),
	}
	if h.notice != "" {
		parts = append(parts, theme.Selected.Render(h.notice))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (h *Screen) renderTabs() string {
	tabs := make([]string, 0, len(tier.All()))
	for _, t := range tier.All() {
		switch {
		case t == h.selected:
			tabs = append(tabs, theme.Selected.Render("["+t.DisplayName()+"]"))
		case h.env.Machine.IsUnlocked(t):
			tabs = append(tabs, theme.Unselected.Render(" "+t.DisplayName()+" "))
		default:
			tabs = append(tabs, theme.Disabled.Render(" "+t.DisplayName()+" ×"))
		}
	}
	return strings.Join(tabs, " ")
}

func (h *Screen) renderGrid() string {
	rows := make([]string, 0, tier.SectionsPerTier/gridColumns)
	for start := 0; start < tier.SectionsPerTier; start += gridColumns {
		cells := make([]string, 0, gridColumns)
		for i := start; i < start+gridColumns; i++ {
			cells = append(cells, h.renderCell(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (h *Screen) renderCell(i int) string {
	label := fmt.Sprintf("§%d", i+1)
	var style lipgloss.Style
	switch h.cell(i) {
	case cellComplete:
		label += "\ncleared"
		style = theme.CellComplete
	case cellLocked:
		label += "\nlocked"
		style = theme.CellLocked
	default:
		label += "\nready"
		style = theme.CellAvailable
	}
	if i == h.cursor {
		style = theme.CellFocused
	}
	return style.Render(label)
}

func (h *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Rank"},
		{Key: "←→↑↓", Description: "Section"},
		{Key: "Enter", Description: "Play"},
	}
	if h.env.Records != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Records"})
	}
	if h.env.Premium != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Premium"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}
