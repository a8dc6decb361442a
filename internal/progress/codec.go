package progress

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sengokuquiz/sengoku/internal/tier"
)

// Persisted keys.
const (
	KeyCurrentTier     = "currentTier"
	KeyTotalCorrect    = "totalCorrectAnswers"
	KeyCheckpointCount = "checkpointCount"
	KeyLastAnswered    = "lastAnsweredQuestionId"
	KeyPerTier         = "perTierProgress"
)

// Encode flattens s into the persisted key/value layout. A nil
// LastAnsweredQuestionID is encoded by omitting the key.
func Encode(s State) map[string]string {
	perTier := make(map[string]int, len(s.PerTier))
	for t, n := range s.PerTier {
		if t.Valid() {
			perTier[t.String()] = n
		}
	}
	// Marshalling a map[string]int cannot fail.
	raw, _ := json.Marshal(perTier)

	values := map[string]string{
		KeyCurrentTier:     s.CurrentTier.String(),
		KeyTotalCorrect:    strconv.Itoa(s.TotalCorrect),
		KeyCheckpointCount: strconv.Itoa(s.CheckpointCount),
		KeyPerTier:         string(raw),
	}
	if s.LastAnsweredQuestionID != nil {
		values[KeyLastAnswered] = strconv.Itoa(*s.LastAnsweredQuestionID)
	}
	return values
}

// Decode rebuilds a State from persisted values. Each field that is missing or
// malformed falls back to its default without affecting the others; the
// returned problems describe what was defaulted.
func Decode(values map[string]string) (State, []string) {
	s := DefaultState()
	var problems []string

	if raw, ok := values[KeyCurrentTier]; ok {
		if t, ok := tier.Parse(raw); ok {
			s.CurrentTier = t
		} else {
			problems = append(problems, fmt.Sprintf("%s: unknown tier %q", KeyCurrentTier, raw))
		}
	}

	if raw, ok := values[KeyPerTier]; ok {
		var perTier map[string]int
		if err := json.Unmarshal([]byte(raw), &perTier); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", KeyPerTier, err))
		} else {
			for name, n := range perTier {
				t, ok := tier.Parse(name)
				if !ok {
					continue
				}
				if n < 0 {
					problems = append(problems, fmt.Sprintf("%s: negative count for %s", KeyPerTier, name))
					continue
				}
				s.PerTier[t] = n
			}
		}
	}

	s.CheckpointCount = decodeCount(values, KeyCheckpointCount, &problems)

	if raw, ok := values[KeyLastAnswered]; ok {
		if id, err := strconv.Atoi(raw); err == nil {
			s.LastAnsweredQuestionID = &id
		} else {
			problems = append(problems, fmt.Sprintf("%s: %v", KeyLastAnswered, err))
		}
	}

	// The total is redundant with the per-tier map; the map wins on disagreement.
	s.TotalCorrect = decodeCount(values, KeyTotalCorrect, &problems)
	if sum := s.SumPerTier(); s.TotalCorrect != sum {
		if _, ok := values[KeyTotalCorrect]; ok {
			problems = append(problems, fmt.Sprintf("%s: %d disagrees with per-tier sum %d", KeyTotalCorrect, s.TotalCorrect, sum))
		}
		s.TotalCorrect = sum
	}

	return s, problems
}

func decodeCount(values map[string]string, key string, problems *[]string) int {
	raw, ok := values[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %v", key, err))
		return 0
	}
	if n < 0 {
		*problems = append(*problems, fmt.Sprintf("%s: negative value %d", key, n))
		return 0
	}
	return n
}
