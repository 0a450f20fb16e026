package game

import (
	"encoding/json"
	"time"
)

// Host is the authority connection for one room: the screen everyone
// watches. There is exactly one per session; when it goes away the
// session goes with it.
type Host struct {
	id        string
	socket    NetworkSession
	writeChan chan []byte
	session   *Session
}

func NewHost(id string, socket NetworkSession) *Host {
	return &Host{
		id:        id,
		socket:    socket,
		writeChan: make(chan []byte, writeChanSize),
	}
}

// ReadPump forwards host commands to the session actor. A dead host
// connection destroys the whole room, which kicks every participant.
func (h *Host) ReadPump(directory *Directory) {
	defer directory.Remove(h.session.Code())

	for {
		data, err := h.socket.Read()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}

		if !h.session.deliver(packet{fromHost: true, event: env.Event, data: env.Data}) {
			return
		}
	}
}

func (h *Host) WritePump() {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()
	defer h.socket.Close("")

	for {
		select {
		case data, ok := <-h.writeChan:
			if !ok {
				return
			}
			if err := h.socket.Write(data); err != nil {
				return
			}
		case <-pings.C:
			if err := h.socket.Ping(); err != nil {
				return
			}
		}
	}
}
