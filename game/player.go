package game

import (
	"encoding/json"
	"time"

	"golang.org/x/time/rate"
)

const (
	writeChanSize = 256
	pingInterval  = time.Second * 30
)

// Player is one joined participant: game state plus the connection that
// carries it. Game fields are only touched by the session actor.
type Player struct {
	id       string
	username string
	points   int
	correct  bool
	ready    bool
	icon     string
	color    string
	// gone marks a participant that disconnected after the game ended;
	// they stay on the roster so standings remain visible, but nothing is
	// sent to them anymore.
	gone bool

	limiter   *rate.Limiter
	socket    NetworkSession
	writeChan chan []byte
	session   *Session
}

func NewPlayer(id, username string, socket NetworkSession) *Player {
	return &Player{
		id:       id,
		username: username,
		// Drawing strokes arrive in bursts; guesses are sparse. One
		// average packet per second with room for a burst of thirty.
		limiter:   rate.NewLimiter(1, 30),
		socket:    socket,
		writeChan: make(chan []byte, writeChanSize),
	}
}

func (p *Player) state() playerState {
	return playerState{
		ID:       p.id,
		Username: p.username,
		Points:   p.points,
		Ready:    p.ready,
		Correct:  p.correct,
		Icon:     p.icon,
		Color:    p.color,
	}
}

// ReadPump forwards inbound envelopes to the session actor until the
// connection dies, then requests removal from the roster. Drawing packets
// skip the limiter so strokes stay smooth; everything else is throttled.
func (p *Player) ReadPump() {
	defer p.session.RequestLeave(p.id)

	for {
		data, err := p.socket.Read()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}

		if env.Event != evDrawing && !p.limiter.Allow() {
			continue
		}

		if !p.session.deliver(packet{player: p, event: env.Event, data: env.Data}) {
			return
		}
	}
}

// WritePump drains the outbound queue and keeps the connection alive with
// pings. It closes the socket when the queue is closed so a final kicked
// frame still goes out first.
func (p *Player) WritePump() {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()
	defer p.socket.Close("")

	for {
		select {
		case data, ok := <-p.writeChan:
			if !ok {
				return
			}
			if err := p.socket.Write(data); err != nil {
				return
			}
		case <-pings.C:
			if err := p.socket.Ping(); err != nil {
				return
			}
		}
	}
}
