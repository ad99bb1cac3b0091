package draft

// TotalRounds is the number of rounds in an NFL draft.
const TotalRounds = 7

// RoundSet is the configured set of rounds to display.
type RoundSet map[int]struct{}

// NewRoundSet builds a RoundSet from a list of round numbers.
func NewRoundSet(rounds []int) RoundSet {
	set := make(RoundSet, len(rounds))
	for _, r := range rounds {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether round is configured. An empty set contains every round.
func (s RoundSet) Contains(round int) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[round]
	return ok
}
