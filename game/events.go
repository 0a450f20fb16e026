package game

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Inbound event names. startGame and clearCanvas are only honored from the
// host connection, the rest only from participants.
const (
	evStartGame    = "startGame"
	evLockIn       = "lockIn"
	evChoosePrompt = "choosePrompt"
	evClearCanvas  = "clearCanvas"
	evDrawing      = "drawing"
	evNewGuess     = "newGuess"
)

// Outbound event names.
const (
	evKicked            = "kicked"
	evCreated           = "created"
	evJoined            = "joined"
	evPlayerJoined      = "playerJoined"
	evPlayerLeft        = "playerLeft"
	evLockInPlayer      = "lockInPlayer"
	evGameStarted       = "gameStarted"
	evPromptChosen      = "promptChosen"
	evCorrectGuess      = "correctGuess"
	evUpdatePlayerState = "updatePlayerState"
	evUpdatePoints      = "updatePoints"
	evTimerUpdate       = "timerUpdate"
	evRoundEnd          = "roundEnd"
	evNextRound         = "nextRound"
	evGameEnd           = "gameEnd"
)

// Envelope is the wire format: a named event plus an event-specific payload.
// Drawing payloads stay opaque raw JSON end to end.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// encodeEvent marshals an envelope once so it can be fanned out to any
// number of connections.
func encodeEvent(event string, data any) []byte {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to marshal event payload")
			return nil
		}
		env.Data = raw
	}
	bytes, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal event envelope")
		return nil
	}
	return bytes
}

type kickedPayload struct {
	Reason string `json:"reason"`
}

type createdPayload struct {
	Room string `json:"room"`
}

type joinedPayload struct {
	ID string `json:"id"`
}

// playerState is the roster view shared with the host.
type playerState struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Ready    bool   `json:"ready"`
	Correct  bool   `json:"correct"`
	Icon     string `json:"icon,omitempty"`
	Color    string `json:"color,omitempty"`
}

type playerJoinedPayload struct {
	Player playerState `json:"player"`
}

type playerLeftPayload struct {
	ID string `json:"id"`
}

type lockInPayload struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type lockInPlayerPayload struct {
	ID    string `json:"id"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

type choosePromptPayload struct {
	Prompt string `json:"prompt"`
}

type guessPayload struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type newGuessPayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// correctGuessPayload deliberately omits the guess text so the prompt never
// leaks to participants who have not solved it.
type correctGuessPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

type updatePointsPayload struct {
	Points int `json:"points"`
}

type updatePlayerStatePayload struct {
	Players []playerState `json:"players"`
}

type timerUpdatePayload struct {
	Time int `json:"time"`
}

type gameStartedPayload struct {
	Drawer  string   `json:"drawer"`
	Prompts []string `json:"prompts,omitempty"`
}

type promptChosenPayload struct {
	Prompt string `json:"prompt,omitempty"`
}

type roundEndPayload struct {
	Time int `json:"time"`
}

type nextRoundPayload struct {
	Time    int      `json:"time"`
	Round   int      `json:"round"`
	Drawer  string   `json:"drawer"`
	Prompts []string `json:"prompts,omitempty"`
}

type gameEndPayload struct {
	Rank   int  `json:"rank"`
	Points int  `json:"points"`
	Tie    bool `json:"tie"`
}

type gameEndHostPayload struct {
	SortedPlayers []RankedPlayer `json:"sortedPlayers"`
}
