package game

import "sort"

// RankedPlayer is one row of the final standings.
type RankedPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"`
	Tie      bool   `json:"tie"`
}

// Rank sorts standings by points descending and assigns competition
// ranks: equal totals share the lower rank and are flagged as ties, the
// next distinct total takes its 1-indexed position in the sorted order.
// Zero-point ties are treated like any other tie. The input order breaks
// sorting ties so output is deterministic for equal scores.
func Rank(standings []RankedPlayer) []RankedPlayer {
	ranked := make([]RankedPlayer, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})

	for i := range ranked {
		if i > 0 && ranked[i].Points == ranked[i-1].Points {
			ranked[i].Rank = ranked[i-1].Rank
			ranked[i].Tie = true
			ranked[i-1].Tie = true
			continue
		}
		ranked[i].Rank = i + 1
		ranked[i].Tie = false
	}

	return ranked
}
