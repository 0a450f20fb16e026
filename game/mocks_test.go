package game

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeConn records writes and never produces reads; scenario tests drive
// the session handlers directly instead of running the pumps.
type fakeConn struct {
	writes    [][]byte
	closed    bool
	closeCode string
}

func (f *fakeConn) Write(data []byte) error {
	f.writes = append(f.writes, data)
	return nil
}

func (f *fakeConn) Read() ([]byte, error) {
	return nil, io.EOF
}

func (f *fakeConn) Ping() error {
	return nil
}

func (f *fakeConn) Close(code string) {
	f.closed = true
	f.closeCode = code
}

// fakeTimerFactory counts starts and stops so tests can check the
// single-live-timer property: starts minus stops is always 0 or 1.
type fakeTimerFactory struct {
	starts int
	stops  int
}

type fakeTimerHandle struct {
	factory *fakeTimerFactory
	stopped bool
}

func (f *fakeTimerFactory) Start(interval time.Duration, ticks chan<- time.Time) TimerHandle {
	f.starts++
	return &fakeTimerHandle{factory: f}
}

func (h *fakeTimerHandle) Stop() {
	if !h.stopped {
		h.stopped = true
		h.factory.stops++
	}
}

func (f *fakeTimerFactory) live() int {
	return f.starts - f.stops
}

func newTestSession(t *testing.T, settings Settings, words ...string) (*Session, *fakeConn, *fakeTimerFactory) {
	t.Helper()
	if len(words) == 0 {
		words = []string{"cat", "dog", "fish", "bird", "horse", "snake", "mouse", "whale", "otter"}
	}
	hostConn := &fakeConn{}
	host := NewHost("host", hostConn)
	timers := &fakeTimerFactory{}
	s := NewSession("TEST1", host, settings, NewWordSource(words), timers)
	return s, hostConn, timers
}

// addPlayer joins a participant through the actor's join handler and
// fails the test on rejection.
func addPlayer(t *testing.T, s *Session, id, username string) *Player {
	t.Helper()
	p := NewPlayer(id, username, &fakeConn{})
	jr := joinRequest{player: p, errChan: make(chan error, 1)}
	s.handleJoin(jr)
	require.NoError(t, <-jr.errChan)
	return p
}

func tryJoin(s *Session, id, username string) error {
	p := NewPlayer(id, username, &fakeConn{})
	jr := joinRequest{player: p, errChan: make(chan error, 1)}
	s.handleJoin(jr)
	return <-jr.errChan
}

// startedSession returns a session mid-round: all players locked in, the
// game started, and the drawer's first offered prompt chosen.
func startedSession(t *testing.T, settings Settings, playerCount int) (*Session, []*Player, *fakeTimerFactory) {
	t.Helper()
	s, _, timers := newTestSession(t, settings)

	players := make([]*Player, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		p := addPlayer(t, s, fmt.Sprintf("p%d", i+1), fmt.Sprintf("player%d", i+1))
		s.handleLockIn(p, mustRaw(t, lockInPayload{}))
		players = append(players, p)
	}

	s.handleStartGame()
	require.Equal(t, StatePlaying, s.state)

	choosePrompt(t, s, drawerOf(t, s, players), s.promptChoices[0])
	return s, players, timers
}

func drawerOf(t *testing.T, s *Session, players []*Player) *Player {
	t.Helper()
	for _, p := range players {
		if p.id == s.drawerID {
			return p
		}
	}
	t.Fatalf("drawer %q is not on the roster", s.drawerID)
	return nil
}

func nonDrawers(s *Session, players []*Player) []*Player {
	others := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.id != s.drawerID {
			others = append(others, p)
		}
	}
	return others
}

func choosePrompt(t *testing.T, s *Session, p *Player, prompt string) {
	t.Helper()
	s.handleChoosePrompt(p, mustRaw(t, choosePromptPayload{Prompt: prompt}))
}

func guess(t *testing.T, s *Session, p *Player, text string) {
	t.Helper()
	s.handleGuess(p, mustRaw(t, guessPayload{Text: text, Timestamp: time.Now().UnixMilli()}))
}

func mustRaw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

// drainEvents empties a connection's outbound queue, decoding envelopes.
func drainEvents(t *testing.T, ch chan []byte) []Envelope {
	t.Helper()
	var events []Envelope
	for {
		select {
		case data, ok := <-ch:
			if !ok {
				return events
			}
			var env Envelope
			require.NoError(t, json.Unmarshal(data, &env))
			events = append(events, env)
		default:
			return events
		}
	}
}

func findEvent(events []Envelope, name string) (Envelope, bool) {
	for _, env := range events {
		if env.Event == name {
			return env, true
		}
	}
	return Envelope{}, false
}

func decodePayload[T any](t *testing.T, env Envelope) T {
	t.Helper()
	var payload T
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	return payload
}
