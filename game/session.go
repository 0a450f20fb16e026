package game

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is the session lifecycle. GAMEEND is terminal; a new game needs a
// new session.
type State int

const (
	StateStartup State = iota
	StatePlaying
	StateRoundEnd
	StateGameEnd
)

func (s State) String() string {
	switch s {
	case StateStartup:
		return "STARTUP"
	case StatePlaying:
		return "PLAYING"
	case StateRoundEnd:
		return "ROUNDEND"
	case StateGameEnd:
		return "GAMEEND"
	default:
		return "UNKNOWN"
	}
}

// Settings are fixed at room creation.
type Settings struct {
	Rounds     int `json:"rounds"`
	MaxPlayers int `json:"maxPlayers"` // 0 means unlimited
}

const (
	defaultRounds        = 3
	roundDuration        = 60 // seconds of drawing per round
	intermissionDuration = 15 // seconds of scoreboard between rounds
	promptBatchSize      = 3
)

// Session is the authoritative state machine for one room. Every mutation
// happens on the actor goroutine in session_actor.go; nothing here takes
// a lock because nothing here is ever called concurrently.
type Session struct {
	code     string
	host     *Host
	settings Settings
	state    State
	roster   *Roster

	timerSeconds int
	round        int // 1-indexed
	drawerID     string
	// prompt is the normalized form guesses are compared against; the
	// raw text is kept separately for the drawer/host notifications.
	prompt        string
	promptText    string
	promptChoices []string
	prevDrawers   map[string]struct{}
	usedPrompts   map[string]struct{}

	words     *WordSource
	scheduler *TurnScheduler
	timers    TimerFactory
	timer     TimerHandle
	ticks     chan time.Time

	inbox         chan packet
	joinRequests  chan joinRequest
	leaveRequests chan string
	closing       chan struct{}
	closeOnce     sync.Once

	logger zerolog.Logger
}

func NewSession(code string, host *Host, settings Settings, words *WordSource, timers TimerFactory) *Session {
	if settings.Rounds <= 0 {
		settings.Rounds = defaultRounds
	}

	s := &Session{
		code:          code,
		host:          host,
		settings:      settings,
		state:         StateStartup,
		roster:        NewRoster(),
		prevDrawers:   make(map[string]struct{}),
		usedPrompts:   make(map[string]struct{}),
		words:         words,
		scheduler:     NewTurnScheduler(),
		timers:        timers,
		inbox:         make(chan packet, 1024),
		joinRequests:  make(chan joinRequest),
		leaveRequests: make(chan string, 64),
		closing:       make(chan struct{}),
		logger:        log.With().Str("room", code).Logger(),
	}
	host.session = s
	return s
}

func (s *Session) Code() string {
	return s.code
}

// normalizeGuess case-folds and trims so "CAT " matches "cat".
func normalizeGuess(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// --- roster operations ---

func (s *Session) handleJoin(jr joinRequest) {
	p := jr.player

	if s.state != StateStartup {
		jr.errChan <- ErrGameInProgress
		return
	}
	if s.settings.MaxPlayers > 0 && s.roster.Len() >= s.settings.MaxPlayers {
		jr.errChan <- ErrRoomFull
		return
	}
	if s.roster.HasName(p.username) {
		jr.errChan <- ErrUsernameTaken
		return
	}

	p.session = s
	s.roster.Add(p)
	jr.errChan <- nil

	s.logger.Info().Str("player", p.id).Str("username", p.username).Msg("player joined")
	s.sendToPlayer(p, encodeEvent(evJoined, joinedPayload{ID: p.id}))
	s.sendToHost(encodeEvent(evPlayerJoined, playerJoinedPayload{Player: p.state()}))
}

func (s *Session) handleLeave(id string) {
	p := s.roster.Get(id)
	if p == nil {
		// Already removed; a second leave for the same id is a no-op.
		return
	}

	if s.state == StateGameEnd {
		// Roster is kept intact after the game so final standings stay
		// visible; just stop addressing the connection.
		if p.gone {
			return
		}
		p.gone = true
		s.sendToHost(encodeEvent(evPlayerLeft, playerLeftPayload{ID: id}))
		return
	}

	wasDrawer := id == s.drawerID
	s.roster.Remove(id)
	delete(s.prevDrawers, id)
	close(p.writeChan)

	s.logger.Info().Str("player", id).Str("username", p.username).Msg("player left")
	s.sendToHost(encodeEvent(evPlayerLeft, playerLeftPayload{ID: id}))

	if s.state != StatePlaying {
		return
	}

	if wasDrawer {
		// The round cannot continue without its drawer; abort straight
		// to the intermission.
		s.drawerID = ""
		s.stopRoundTimer()
		s.enterRoundEnd()
		return
	}

	if s.roster.AllGuessed(s.drawerID) {
		s.stopRoundTimer()
		s.enterRoundEnd()
	}
}

func (s *Session) handleLockIn(p *Player, data json.RawMessage) {
	if s.state != StateStartup {
		return
	}

	var payload lockInPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return
		}
	}

	p.ready = true
	p.icon = payload.Icon
	p.color = payload.Color

	s.logger.Debug().Str("player", p.id).Msg("player locked in")
	s.sendToHost(encodeEvent(evLockInPlayer, lockInPlayerPayload{ID: p.id, Icon: p.icon, Color: p.color}))
}

// --- game flow ---

func (s *Session) handleStartGame() {
	if s.state != StateStartup || s.roster.Len() == 0 || !s.roster.AllReady() {
		s.logger.Debug().Stringer("state", s.state).Msg("startGame rejected")
		return
	}
	s.round = 1
	s.startRound(true)
}

// startRound moves the session into PLAYING with a fresh drawer and
// prompt batch. Prompts are drawn before any state changes so an
// exhausted word list never leaves a half-started round behind.
func (s *Session) startRound(initial bool) {
	prompts, err := s.scheduler.PickPrompts(promptBatchSize, s.usedPrompts, s.words)
	if err != nil {
		s.logger.Warn().Err(err).Int("round", s.round).Msg("prompt supply exhausted")
		if initial {
			// Nothing has started yet; stay in STARTUP.
			return
		}
		s.enterGameEnd()
		return
	}

	drawerID := s.scheduler.PickDrawer(s.roster.IDs(), s.prevDrawers)

	s.state = StatePlaying
	s.drawerID = drawerID
	s.prompt = ""
	s.promptText = ""
	s.promptChoices = prompts
	s.timerSeconds = roundDuration
	s.roster.ResetRoundFlags()

	drawer := s.roster.Get(drawerID)
	s.logger.Info().Int("round", s.round).Str("drawer", drawerID).Msg("round started")

	if initial {
		withPrompts := encodeEvent(evGameStarted, gameStartedPayload{Drawer: drawerID, Prompts: prompts})
		withoutPrompts := encodeEvent(evGameStarted, gameStartedPayload{Drawer: drawerID})
		s.sendToPlayer(drawer, withPrompts)
		s.sendToHost(withoutPrompts)
		s.broadcastPlayers(withoutPrompts, drawer)
	} else {
		payload := nextRoundPayload{Time: s.timerSeconds, Round: s.round, Drawer: drawerID}
		withoutPrompts := encodeEvent(evNextRound, payload)
		payload.Prompts = prompts
		withPrompts := encodeEvent(evNextRound, payload)
		s.sendToPlayer(drawer, withPrompts)
		s.sendToHost(withoutPrompts)
		s.broadcastPlayers(withoutPrompts, drawer)
	}

	s.sendToHost(encodeEvent(evUpdatePlayerState, updatePlayerStatePayload{Players: s.roster.States()}))
}

func (s *Session) handleChoosePrompt(p *Player, data json.RawMessage) {
	var payload choosePromptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	// NotDrawer and repeat choices are user errors, silently dropped.
	if s.state != StatePlaying || p.id != s.drawerID || s.prompt != "" {
		s.logger.Debug().Str("player", p.id).Msg("choosePrompt rejected")
		return
	}

	var chosen string
	for _, candidate := range s.promptChoices {
		if candidate == payload.Prompt {
			chosen = candidate
			break
		}
	}
	if chosen == "" {
		s.logger.Debug().Str("player", p.id).Msg("choosePrompt not in offered batch")
		return
	}

	s.promptText = chosen
	s.prompt = normalizeGuess(chosen)
	s.timerSeconds = roundDuration

	s.logger.Info().Int("round", s.round).Msg("prompt chosen")

	withPrompt := encodeEvent(evPromptChosen, promptChosenPayload{Prompt: chosen})
	withoutPrompt := encodeEvent(evPromptChosen, promptChosenPayload{})
	s.sendToHost(withPrompt)
	s.sendToPlayer(p, withPrompt)
	s.broadcastPlayers(withoutPrompt, p)

	s.ensureRoundTimer()
}

func (s *Session) handleDrawing(p *Player, data json.RawMessage) {
	if s.state != StatePlaying || p.id != s.drawerID {
		return
	}
	// Stateless passthrough; stroke payloads stay opaque.
	s.sendToHost(encodeEvent(evDrawing, data))
}

func (s *Session) handleClearCanvas() {
	s.broadcastPlayers(encodeEvent(evClearCanvas, nil), nil)
}

func (s *Session) handleGuess(p *Player, data json.RawMessage) {
	var payload guessPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	if s.state != StatePlaying || p.id == s.drawerID || p.correct {
		return
	}

	if s.prompt != "" && normalizeGuess(payload.Text) == s.prompt {
		p.correct = true
		p.points += s.timerSeconds

		s.logger.Info().Str("player", p.id).Int("points", p.points).Msg("correct guess")
		s.sendToPlayer(p, encodeEvent(evUpdatePoints, updatePointsPayload{Points: p.points}))

		announce := encodeEvent(evCorrectGuess, correctGuessPayload{ID: p.id, Username: p.username, Points: p.points})
		s.sendToHost(announce)
		s.broadcastPlayers(announce, p)

		if s.roster.AllGuessed(s.drawerID) {
			s.stopRoundTimer()
			s.enterRoundEnd()
		}
		return
	}

	// Wrong guesses are relayed as chat to everyone but the sender. A
	// near-miss is never echoed back with a verdict that would narrow
	// down the answer.
	chat := encodeEvent(evNewGuess, newGuessPayload{
		ID:        p.id,
		Username:  p.username,
		Text:      payload.Text,
		Timestamp: payload.Timestamp,
	})
	s.sendToHost(chat)
	s.broadcastPlayers(chat, p)
}

// --- timer ---

// handleTick is the only autonomous driver of the state machine: it
// decrements the countdown and fires the transition when the value
// crosses below zero, so the observable timer is never negative.
func (s *Session) handleTick() {
	if s.timer == nil {
		return
	}

	s.timerSeconds--
	if s.timerSeconds >= 0 {
		s.broadcast(encodeEvent(evTimerUpdate, timerUpdatePayload{Time: s.timerSeconds}))
		return
	}

	switch s.state {
	case StatePlaying:
		s.enterRoundEnd()
	case StateRoundEnd:
		// Everyone may have left during the intermission; there is no
		// round to start without participants.
		if s.round >= s.settings.Rounds || s.roster.Len() == 0 {
			s.enterGameEnd()
			return
		}
		s.round++
		s.startRound(false)
	}
}

func (s *Session) enterRoundEnd() {
	s.state = StateRoundEnd
	s.timerSeconds = intermissionDuration

	s.logger.Info().Int("round", s.round).Msg("round ended")
	s.broadcast(encodeEvent(evRoundEnd, roundEndPayload{Time: s.timerSeconds}))
	s.sendToHost(encodeEvent(evUpdatePlayerState, updatePlayerStatePayload{Players: s.roster.States()}))

	s.ensureRoundTimer()
}

func (s *Session) enterGameEnd() {
	s.stopRoundTimer()
	s.state = StateGameEnd
	s.timerSeconds = 0

	standings := make([]RankedPlayer, 0, s.roster.Len())
	for _, p := range s.roster.Players() {
		standings = append(standings, RankedPlayer{ID: p.id, Username: p.username, Points: p.points})
	}
	ranked := Rank(standings)

	s.logger.Info().Int("players", len(ranked)).Msg("game ended")

	byID := make(map[string]RankedPlayer, len(ranked))
	for _, rp := range ranked {
		byID[rp.ID] = rp
	}
	for _, p := range s.roster.Players() {
		rp := byID[p.id]
		s.sendToPlayer(p, encodeEvent(evGameEnd, gameEndPayload{Rank: rp.Rank, Points: rp.Points, Tie: rp.Tie}))
	}
	s.sendToHost(encodeEvent(evGameEnd, gameEndHostPayload{SortedPlayers: ranked}))
}

// ensureRoundTimer starts the repeating timer if none is live. A session
// never has two timers at once: the only starts go through here, and both
// paths that supersede a wait stop the old handle first.
func (s *Session) ensureRoundTimer() {
	if s.timer != nil {
		return
	}
	s.ticks = make(chan time.Time, 1)
	s.timer = s.timers.Start(time.Second, s.ticks)
}

func (s *Session) stopRoundTimer() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
	// Ticks already buffered on the old channel are abandoned with it.
	s.ticks = nil
}

// --- outbound fanout ---

func (s *Session) sendToHost(data []byte) {
	if data == nil {
		return
	}
	s.host.writeChan <- data
}

func (s *Session) sendToPlayer(p *Player, data []byte) {
	if data == nil || p == nil || p.gone {
		return
	}
	p.writeChan <- data
}

// broadcastPlayers fans out to every participant except the given one.
func (s *Session) broadcastPlayers(data []byte, except *Player) {
	for _, p := range s.roster.Players() {
		if p != except {
			s.sendToPlayer(p, data)
		}
	}
}

func (s *Session) broadcast(data []byte) {
	s.sendToHost(data)
	s.broadcastPlayers(data, nil)
}
