package game

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	minRoomCodeLength = 4
	minUsernameLength = 3
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS middleware in front.
		return true
	},
}

type GameHandler struct {
	directory *Directory
}

func NewGameHandler(directory *Directory) *GameHandler {
	return &GameHandler{directory: directory}
}

func RegisterRoutes(engine *gin.Engine, handler *GameHandler) {
	group := engine.Group("/game")
	group.GET("/host", handler.HostHandler)
	group.GET("/join/:code", handler.JoinHandler)
}

// HostHandler upgrades the authority connection and creates its room.
// Game settings ride in as query parameters.
func (h *GameHandler) HostHandler(ctx *gin.Context) {
	settings := Settings{Rounds: defaultRounds}
	if rounds, err := strconv.Atoi(ctx.Query("rounds")); err == nil && rounds > 0 {
		settings.Rounds = rounds
	}
	if maxPlayers, err := strconv.Atoi(ctx.Query("maxPlayers")); err == nil && maxPlayers > 0 {
		settings.MaxPlayers = maxPlayers
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	socket := NewWebsocketConnection(conn)

	host := NewHost(uuid.NewString(), socket)
	session, err := h.directory.Create(host, settings)
	if err != nil {
		kickConnection(socket, kickReason(err))
		return
	}

	host.writeChan <- encodeEvent(evCreated, createdPayload{Room: session.Code()})

	go host.ReadPump(h.directory)
	go host.WritePump()
}

// JoinHandler validates the participant handshake, then hands the
// connection to the session actor for the roster checks.
func (h *GameHandler) JoinHandler(ctx *gin.Context) {
	code := strings.ToUpper(ctx.Param("code"))
	username := ctx.Query("username")

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	socket := NewWebsocketConnection(conn)

	if len(code) < minRoomCodeLength {
		kickConnection(socket, KickInvalidRoomCode)
		return
	}
	if len(username) < minUsernameLength {
		kickConnection(socket, KickInvalidUsername)
		return
	}

	session, ok := h.directory.Lookup(code)
	if !ok {
		kickConnection(socket, KickRoomNotFound)
		return
	}

	player := NewPlayer(uuid.NewString(), username, socket)
	if err := session.Join(player); err != nil {
		kickConnection(socket, kickReason(err))
		return
	}

	go player.ReadPump()
	go player.WritePump()
}

// kickConnection rejects a connection before it ever owns a write pump.
func kickConnection(socket NetworkSession, reason string) {
	if data := encodeEvent(evKicked, kickedPayload{Reason: reason}); data != nil {
		socket.Write(data)
	}
	socket.Close(reason)
}
