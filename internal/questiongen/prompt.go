package questiongen

import (
	"fmt"
	"strings"

	"github.com/sengokuquiz/sengoku/internal/tier"
)

const systemPrompt = `You write multiple-choice quiz questions about Japan's Sengoku period (1467-1615).

Rules:
- Every question has exactly four options and exactly one of them is correct.
- Distractors must be plausible people, places, clans or years from the same era.
- Never reveal the answer in the question text.
- Keep questions short enough to read on a phone screen.
- The explanation gives one or two sentences of context for the correct answer.
- Match the requested difficulty: lower ranks ask about famous events and figures, higher ranks about campaigns, retainers and dates.
- Do not repeat any question from the "already in this rank" list.`

// difficulty describes each tier to the model.
var difficulty = map[tier.Tier]string{
	tier.SmallDaimyo: "beginner: the best known battles, warlords and unifiers",
	tier.LargeDaimyo: "easy: major clans, castles and turning-point battles",
	tier.Gunyuu:      "intermediate: regional warlords, alliances and famous retainers",
	tier.Hasha:       "hard: campaigns, sieges, dates and political maneuvering",
	tier.Tenkabito:   "expert: obscure retainers, exact years and lesser-known engagements",
}

func buildUserMessage(t tier.Tier, count int, prior []string, maxPrior int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rank: %s (%s)\n", t.DisplayName(), t)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty[t])
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	b.WriteString("\nAlready in this rank:\n")
	if maxPrior > 0 && len(prior) > maxPrior {
		prior = prior[len(prior)-maxPrior:]
	}
	if len(prior) == 0 {
		b.WriteString("None")
	}
	for i, p := range prior {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, p)
	}
	return b.String()
}
