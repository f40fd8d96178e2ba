package athletic

import "sort"

// TrendDirection summarizes how enjoyment is moving
type TrendDirection string

const (
	TrendRising       TrendDirection = "rising"
	TrendStable       TrendDirection = "stable"
	TrendDeclining    TrendDirection = "declining"
	TrendInsufficient TrendDirection = "insufficient_data"
)

// trendWindow is how many check-ins each comparison window holds
const trendWindow = 3

// trendThreshold is the mean-enjoyment delta that counts as movement
const trendThreshold = 0.5

// Trend is the result of comparing recent enjoyment against the period before
type Trend struct {
	Direction TrendDirection `json:"direction"`
	Delta     float64        `json:"delta"`
	Message   string         `json:"message"`
}

// AnalyzeTrend compares the mean enjoyment of the three most recent
// check-ins against the three before them. A drop of 0.5 or more flags
// declining enjoyment; a rise of 0.5 or more flags rising.
func AnalyzeTrend(checkins []*FunCheckIn) Trend {
	if len(checkins) < trendWindow*2 {
		return Trend{
			Direction: TrendInsufficient,
			Message:   "Not enough check-ins yet to spot a trend. Keep checking in!",
		}
	}

	ordered := make([]*FunCheckIn, len(checkins))
	copy(ordered, checkins)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	n := len(ordered)
	recent := meanEnjoyment(ordered[n-trendWindow:])
	previous := meanEnjoyment(ordered[n-trendWindow*2 : n-trendWindow])
	delta := recent - previous

	switch {
	case delta <= -trendThreshold:
		return Trend{
			Direction: TrendDeclining,
			Delta:     delta,
			Message:   "Enjoyment has been dropping lately. It may be worth a conversation about how practice is feeling.",
		}
	case delta >= trendThreshold:
		return Trend{
			Direction: TrendRising,
			Delta:     delta,
			Message:   "Enjoyment is on the rise. Whatever changed recently is working!",
		}
	default:
		return Trend{
			Direction: TrendStable,
			Delta:     delta,
			Message:   "Enjoyment has been steady.",
		}
	}
}

func meanEnjoyment(checkins []*FunCheckIn) float64 {
	sum := 0
	for _, c := range checkins {
		sum += c.Enjoyment
	}
	return float64(sum) / float64(len(checkins))
}
