package tier

// Tier is one of the five ordered proficiency levels a player climbs.
type Tier int

const (
	SmallDaimyo Tier = iota // Entry tier, always unlocked
	LargeDaimyo
	Gunyuu
	Hasha
	Tenkabito // Terminal tier, no successor
)

const (
	// SectionSize is the number of questions in one section.
	SectionSize = 10

	// SectionsPerTier is the number of sections that complete a tier.
	SectionsPerTier = 10

	// requiredCorrect is the correct-answer threshold shared by every tier.
	requiredCorrect = SectionSize * SectionsPerTier
)

// All returns every tier in progression order.
func All() []Tier {
	return []Tier{SmallDaimyo, LargeDaimyo, Gunyuu, Hasha, Tenkabito}
}

// First returns the lowest tier.
func First() Tier {
	return SmallDaimyo
}

// Valid reports whether t is one of the five defined tiers.
func (t Tier) Valid() bool {
	return t >= SmallDaimyo && t <= Tenkabito
}

// RequiredCorrect returns the cumulative correct answers needed to clear the tier.
func (t Tier) RequiredCorrect() int {
	return requiredCorrect
}

// Next returns the successor tier. ok is false for the terminal tier.
func (t Tier) Next() (next Tier, ok bool) {
	if !t.Valid() || t == Tenkabito {
		return t, false
	}
	return t + 1, true
}

// Prev returns the predecessor tier. ok is false for the first tier.
func (t Tier) Prev() (prev Tier, ok bool) {
	if !t.Valid() || t == SmallDaimyo {
		return t, false
	}
	return t - 1, true
}

// String returns the stable persistence name of the tier.
func (t Tier) String() string {
	switch t {
	case SmallDaimyo:
		return "small_daimyo"
	case LargeDaimyo:
		return "large_daimyo"
	case Gunyuu:
		return "gunyuu"
	case Hasha:
		return "hasha"
	case Tenkabito:
		return "tenkabito"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case SmallDaimyo:
		return "Small Daimyo"
	case LargeDaimyo:
		return "Great Daimyo"
	case Gunyuu:
		return "Warlord"
	case Hasha:
		return "Hegemon"
	case Tenkabito:
		return "Ruler of the Realm"
	default:
		return t.String()
	}
}

// Battle names the campaign backdrop of the tier.
func (t Tier) Battle() string {
	switch t {
	case SmallDaimyo:
		return "Okehazama"
	case LargeDaimyo:
		return "Anegawa"
	case Gunyuu:
		return "Nagashino"
	case Hasha:
		return "Sekigahara"
	case Tenkabito:
		return "Osaka"
	default:
		return ""
	}
}

// Parse maps a persistence name back to its Tier.
func Parse(name string) (Tier, bool) {
	for _, t := range All() {
		if t.String() == name {
			return t, true
		}
	}
	return SmallDaimyo, false
}
