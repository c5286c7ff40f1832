package streak

// DefaultThresholds are the streak lengths that earn a milestone, ascending.
var DefaultThresholds = []int{3, 7, 14, 30, 100, 365}

// NewlyReached returns the threshold the streak has just landed on, if any.
// A threshold fires only when the new value equals it exactly and the
// previous value was below it. Merely exceeding a threshold, e.g. after a
// backfill jump, never fires it.
func NewlyReached(prev, current int, thresholds []int) (int, bool) {
	if current <= prev {
		return 0, false
	}
	for _, t := range thresholds {
		if current == t && prev < t {
			return t, true
		}
	}
	return 0, false
}
