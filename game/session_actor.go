package game

// packet is one inbound message after envelope decoding. player is nil
// when the packet came from the host connection.
type packet struct {
	fromHost bool
	player   *Player
	event    string
	data     []byte
}

type joinRequest struct {
	player  *Player
	errChan chan error
}

// Run is the session actor: the single goroutine through which every
// mutation of this session's state flows. Participant actions, join and
// leave requests, and timer ticks are serialized here; sessions for
// different rooms run their own actors and never touch each other.
func (s *Session) Run() {
	defer s.teardown()

	for {
		select {
		case <-s.closing:
			return
		case jr := <-s.joinRequests:
			s.handleJoin(jr)
		case id := <-s.leaveRequests:
			s.handleLeave(id)
		case pkt := <-s.inbox:
			s.handlePacket(pkt)
		case <-s.ticks:
			s.handleTick()
		}
	}
}

func (s *Session) handlePacket(pkt packet) {
	// leaveRequests and inbox are separate channels, so packets can trail
	// their sender's leave. A departed player gets no say anymore.
	if pkt.player != nil && s.roster.Get(pkt.player.id) == nil {
		return
	}

	switch pkt.event {
	case evStartGame:
		if pkt.fromHost {
			s.handleStartGame()
		}
	case evClearCanvas:
		if pkt.fromHost {
			s.handleClearCanvas()
		}
	case evLockIn:
		if pkt.player != nil {
			s.handleLockIn(pkt.player, pkt.data)
		}
	case evChoosePrompt:
		if pkt.player != nil {
			s.handleChoosePrompt(pkt.player, pkt.data)
		}
	case evDrawing:
		if pkt.player != nil {
			s.handleDrawing(pkt.player, pkt.data)
		}
	case evNewGuess:
		if pkt.player != nil {
			s.handleGuess(pkt.player, pkt.data)
		}
	default:
		s.logger.Debug().Str("event", pkt.event).Msg("dropping unknown event")
	}
}

// Join hands a participant to the actor and waits for the verdict. It
// never blocks on a dying session.
func (s *Session) Join(p *Player) error {
	jr := joinRequest{player: p, errChan: make(chan error, 1)}

	select {
	case s.joinRequests <- jr:
	case <-s.closing:
		return ErrRoomNotFound
	}

	select {
	case err := <-jr.errChan:
		return err
	case <-s.closing:
		return ErrRoomNotFound
	}
}

// RequestLeave queues a roster removal. Safe to call more than once for
// the same id.
func (s *Session) RequestLeave(id string) {
	select {
	case s.leaveRequests <- id:
	case <-s.closing:
	}
}

// deliver queues an inbound packet for the actor, reporting false once
// the session is shutting down so pumps can exit.
func (s *Session) deliver(pkt packet) bool {
	select {
	case s.inbox <- pkt:
		return true
	case <-s.closing:
		return false
	}
}

// Close tears the session down: the actor drains, cancels its timer, and
// kicks everyone. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

// teardown runs on the actor goroutine after Close. The timer is stopped
// before anything else so no stale tick can fire into a dead session.
func (s *Session) teardown() {
	s.stopRoundTimer()

	kicked := encodeEvent(evKicked, kickedPayload{Reason: KickControllerLeft})
	for _, p := range s.roster.Players() {
		if !p.gone {
			s.sendToPlayer(p, kicked)
			close(p.writeChan)
		}
	}
	close(s.host.writeChan)

	// Joins that raced with shutdown get a definitive answer.
	for {
		select {
		case jr := <-s.joinRequests:
			jr.errChan <- ErrRoomNotFound
		default:
			s.logger.Info().Msg("session closed")
			return
		}
	}
}
