package assignment

import "github.com/mesaflow/booking-backend/internal/table"

// Scoring weights. The ordinal properties matter more than the exact
// numbers: less wasted capacity always beats more, an exact zone match
// always beats fill-order rank, and a lower priority value never scores
// below a higher one.
const (
	fitBase         = 100
	fitWastePenalty = 10

	zoneExactBonus = 50
	zoneFillBase   = 30
	zoneFillStep   = 5

	priorityBase = 20
)

// fitScore rewards seating the party with as few wasted seats as possible.
// Monotone decreasing in waste, floored at zero.
func fitScore(t *table.Table, partySize int) int {
	wasted := t.Capacity - partySize
	score := fitBase - fitWastePenalty*wasted
	if score < 0 {
		return 0
	}
	return score
}

// zoneScore rewards matching the requested zone exactly; absent a request
// (or on a miss) the business's zone fill order ranks tables instead.
func zoneScore(t *table.Table, preferredZone string, fillOrder []string) int {
	if preferredZone != "" && t.Zone == preferredZone {
		return zoneExactBonus
	}
	for i, zone := range fillOrder {
		if zone == t.Zone {
			score := zoneFillBase - zoneFillStep*i
			if score < 0 {
				return 0
			}
			return score
		}
	}
	return 0
}

// priorityScore maps the table's priority (lower = preferred) onto a bonus
// clamped to [0, priorityBase].
func priorityScore(t *table.Table) int {
	score := priorityBase - t.Priority
	if score < 0 {
		return 0
	}
	if score > priorityBase {
		return priorityBase
	}
	return score
}

func totalScore(t *table.Table, partySize int, preferredZone string, fillOrder []string) int {
	return fitScore(t, partySize) + zoneScore(t, preferredZone, fillOrder) + priorityScore(t)
}
