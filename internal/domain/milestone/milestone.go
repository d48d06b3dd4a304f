// Package milestone maps streak lengths to named achievement tiers.
package milestone

// Tier is a named achievement level unlocked at a fixed streak threshold.
type Tier struct {
	Name          string `json:"name"`
	ThresholdDays int    `json:"threshold_days"`
}

// Tiers is the ordered threshold table. Ordering is relied on by TierFor and
// DaysToNextTier; keep it ascending.
var Tiers = []Tier{
	{Name: "Bronze", ThresholdDays: 30},
	{Name: "Silver", ThresholdDays: 60},
	{Name: "Gold", ThresholdDays: 100},
	{Name: "Crystal", ThresholdDays: 150},
	{Name: "Ruby", ThresholdDays: 250},
	{Name: "Emerald", ThresholdDays: 500},
}

// TierFor returns the highest tier whose threshold is at or below streakDays.
// ok is false below the first threshold.
func TierFor(streakDays int) (tier Tier, ok bool) {
	for _, t := range Tiers {
		if streakDays >= t.ThresholdDays {
			tier = t
			ok = true
		}
	}
	return tier, ok
}

// DaysToNextTier returns how many days remain until the next tier unlocks.
// maxed is true once the last tier is reached, in which case remaining is 0.
func DaysToNextTier(streakDays int) (remaining int, maxed bool) {
	for _, t := range Tiers {
		if streakDays < t.ThresholdDays {
			return t.ThresholdDays - streakDays, false
		}
	}
	return 0, true
}
