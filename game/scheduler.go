package game

import (
	"math/rand"
	"time"
)

// TurnScheduler picks drawers with a no-repeat-until-exhausted policy and
// deals prompt batches without replacement. It only ever sees snapshots;
// the session owns the sets it mutates through the arguments.
type TurnScheduler struct {
	rng *rand.Rand
}

func NewTurnScheduler() *TurnScheduler {
	return &TurnScheduler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// PickDrawer selects uniformly among roster members that have not drawn
// since the pool last reset. Once everyone has drawn the pool clears and
// the rotation starts over. Calling with an empty roster is a caller bug.
func (ts *TurnScheduler) PickDrawer(ids []string, previousDrawers map[string]struct{}) string {
	if len(ids) == 0 {
		panic("PickDrawer called with an empty roster")
	}

	eligible := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, drawn := previousDrawers[id]; !drawn {
			eligible = append(eligible, id)
		}
	}

	if len(eligible) == 0 {
		for id := range previousDrawers {
			delete(previousDrawers, id)
		}
		eligible = ids
	}

	pick := eligible[ts.rng.Intn(len(eligible))]
	previousDrawers[pick] = struct{}{}
	return pick
}

// PickPrompts deals n prompts the session has not consumed yet. The whole
// batch counts as consumed once dealt, so a word is offered at most once
// per session.
func (ts *TurnScheduler) PickPrompts(n int, usedPrompts map[string]struct{}, source *WordSource) ([]string, error) {
	available := make([]string, 0, source.Count())
	for _, word := range source.Words() {
		if _, used := usedPrompts[word]; !used {
			available = append(available, word)
		}
	}

	if len(available) < n {
		return nil, ErrInsufficientPrompts
	}

	ts.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	batch := available[:n]
	for _, word := range batch {
		usedPrompts[word] = struct{}{}
	}
	return batch, nil
}
