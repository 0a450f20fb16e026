package game

import "errors"

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room full")
	ErrRoomExists          = errors.New("room already exists")
	ErrGameInProgress      = errors.New("game in progress")
	ErrUsernameTaken       = errors.New("username taken")
	ErrNotDrawer           = errors.New("not the current drawer")
	ErrInsufficientPrompts = errors.New("not enough prompts left")
)

// Reason codes carried by the kicked event. Connections rejected with one
// of these are closed immediately and never retried.
const (
	KickFailedHandshake = "failedHandshake"
	KickInvalidRoomCode = "invalidRoomCode"
	KickInvalidUsername = "invalidUsername"
	KickRoomNotFound    = "roomNotFound"
	KickGameInProgress  = "gameInProgress"
	KickUsernameTaken   = "usernameTaken"
	KickRoomFull        = "roomFull"
	KickRoomExists      = "roomAlreadyExists"
	KickControllerLeft  = "controllerLeft"
)

// kickReason maps a join rejection to the reason code sent to the client.
func kickReason(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return KickRoomNotFound
	case errors.Is(err, ErrRoomFull):
		return KickRoomFull
	case errors.Is(err, ErrGameInProgress):
		return KickGameInProgress
	case errors.Is(err, ErrUsernameTaken):
		return KickUsernameTaken
	case errors.Is(err, ErrRoomExists):
		return KickRoomExists
	default:
		return KickFailedHandshake
	}
}
