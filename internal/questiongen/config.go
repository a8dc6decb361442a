package questiongen

// Config controls a Drafter.
type Config struct {
	// Checks run in order on every drafted question; the first failure
	// rejects it.
	Checks []Check

	// Count is how many questions one Draft call asks for.
	Count int

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps how many existing prompts of the tier are
	// quoted back to the model so it avoids repeats.
	MaxPriorQuestions int
}

func DefaultConfig() Config {
	return Config{
		Checks:            []Check{RecordCheck{}, DistinctPromptCheck{}, AnswerNotInPromptCheck{}},
		Count:             10,
		MaxTokens:         4096,
		Temperature:       0.8,
		MaxPriorQuestions: 40,
	}
}
