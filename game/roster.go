package game

import "strings"

// Roster is the ordered set of participants in one session. It is owned
// and mutated exclusively by the session actor; everything else gets
// copies or derived values.
type Roster struct {
	players []*Player
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) Len() int {
	return len(r.players)
}

func (r *Roster) Players() []*Player {
	return r.players
}

func (r *Roster) Get(id string) *Player {
	for _, p := range r.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (r *Roster) Add(p *Player) {
	r.players = append(r.players, p)
}

// Remove reports whether the id was present, so a second remove for the
// same id is a clean no-op.
func (r *Roster) Remove(id string) bool {
	for i, p := range r.players {
		if p.id == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

// HasName matches display names case-insensitively, the same rule applied
// at join time.
func (r *Roster) HasName(username string) bool {
	for _, p := range r.players {
		if strings.EqualFold(p.username, username) {
			return true
		}
	}
	return false
}

func (r *Roster) AllReady() bool {
	for _, p := range r.players {
		if !p.ready {
			return false
		}
	}
	return true
}

// AllGuessed reports whether every participant other than the drawer has
// solved the current prompt. Vacuously true when the drawer is the only
// one left, which ends the round on the next check.
func (r *Roster) AllGuessed(drawerID string) bool {
	for _, p := range r.players {
		if p.id == drawerID {
			continue
		}
		if !p.correct {
			return false
		}
	}
	return true
}

func (r *Roster) ResetRoundFlags() {
	for _, p := range r.players {
		p.correct = false
	}
}

func (r *Roster) IDs() []string {
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		ids = append(ids, p.id)
	}
	return ids
}

// States returns the host-facing view of the roster.
func (r *Roster) States() []playerState {
	states := make([]playerState, 0, len(r.players))
	for _, p := range r.players {
		states = append(states, p.state())
	}
	return states
}
