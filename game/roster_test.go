package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterWith(names ...string) *Roster {
	r := NewRoster()
	for i, name := range names {
		r.Add(NewPlayer(string(rune('a'+i)), name, &fakeConn{}))
	}
	return r
}

func TestRoster_HasNameIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	r := rosterWith("Alice", "bob")

	assert.True(t, r.HasName("ALICE"))
	assert.True(t, r.HasName("Bob"))
	assert.False(t, r.HasName("carol"))
}

func TestRoster_RemoveIsIdempotent(t *testing.T) {
	t.Parallel()
	r := rosterWith("alice", "bob")

	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	assert.Equal(t, 1, r.Len())
}

func TestRoster_RemovePreservesOrder(t *testing.T) {
	t.Parallel()
	r := rosterWith("alice", "bob", "carol")

	require.True(t, r.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, r.IDs())
}

func TestRoster_AllReady(t *testing.T) {
	t.Parallel()
	r := rosterWith("alice", "bob")
	assert.False(t, r.AllReady())

	for _, p := range r.Players() {
		p.ready = true
	}
	assert.True(t, r.AllReady())

	// Empty rosters are vacuously ready; the session guards against
	// starting with nobody in the room.
	assert.True(t, NewRoster().AllReady())
}

func TestRoster_AllGuessedExcludesDrawer(t *testing.T) {
	t.Parallel()
	r := rosterWith("alice", "bob", "carol")

	assert.False(t, r.AllGuessed("a"))

	r.Get("b").correct = true
	assert.False(t, r.AllGuessed("a"))

	r.Get("c").correct = true
	assert.True(t, r.AllGuessed("a"), "the drawer's own flag is irrelevant")
}

func TestRoster_ResetRoundFlags(t *testing.T) {
	t.Parallel()
	r := rosterWith("alice", "bob")
	for _, p := range r.Players() {
		p.correct = true
	}

	r.ResetRoundFlags()
	for _, p := range r.Players() {
		assert.False(t, p.correct)
	}
}
