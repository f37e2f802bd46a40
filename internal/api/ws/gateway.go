// Package ws is the event gateway: it accepts WebSocket connections,
// resolves sessions, dispatches the closed set of named events onto room
// operations and orchestrates snapshot broadcasts.
package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/session"
)

// UserDirectory resolves a player identity to its durable user record.
type UserDirectory interface {
	FindUser(id string) (room.User, bool)
}

// RoundArchive receives the final snapshot and updated balance for every
// seated player when a round concludes. Failures are logged, never rolled
// back into room state.
type RoundArchive interface {
	RecordRoundResult(userID string, state room.RoomState) error
	UpdateUserBalance(userID string, u room.User) error
}

type Gateway struct {
	hub      *Hub
	sessions *session.Registry
	manager  *room.Manager
	users    UserDirectory
	archive  RoundArchive
	catalog  room.Catalog
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewGateway(hub *Hub, sessions *session.Registry, manager *room.Manager, users UserDirectory, archive RoundArchive, catalog room.Catalog, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		hub:      hub,
		sessions: sessions,
		manager:  manager,
		users:    users,
		archive:  archive,
		catalog:  catalog,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades GET /ws?id=<identity>. A missing identity refuses the
// connection before the upgrade.
func (g *Gateway) HandleWS(c *gin.Context) {
	identity := c.Query("id")
	if identity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id parameter"})
		return
	}
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(uuid.NewString(), conn)
	g.hub.add(client)
	g.sessions.Bind(client.ID, identity)
	g.manager.EnsureSeeded(g.catalog)
	g.log.Infow("player connected", "identity", identity, "conn", client.ID)

	go client.writePump()
	g.hub.sendTo(client.ID, EventRoomsUpdate, g.manager.Snapshots())
	g.readLoop(client)
}

func (g *Gateway) readLoop(c *Client) {
	defer g.disconnect(c)
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			g.hub.sendTo(c.ID, EventError, "malformed event payload")
			continue
		}
		g.dispatch(c, env)
	}
}

// dispatch is the single switch over the inbound event set. Every branch
// reports rejected requests to the offending connection only and never
// panics the read loop.
func (g *Gateway) dispatch(c *Client, env Envelope) {
	switch env.Event {
	case EventJoinRoom:
		g.handleJoin(c, env.Data)
	case EventLeaveRoom:
		g.handleLeave(c, env.Data)
	case EventPlayerBet:
		g.handleBet(c, env.Data)
	case EventPlayerAction:
		g.handleAction(c, env.Data)
	case EventRestartGame:
		g.handleRestart(c, env.Data)
	case EventSendMessage:
		g.handleChat(c, env.Data)
	default:
		g.hub.sendTo(c.ID, EventError, "unknown event: "+env.Event)
	}
}

func (g *Gateway) handleJoin(c *Client, data json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.UserID == "" || p.RoomID == "" {
		g.hub.sendTo(c.ID, EventError, "userId and roomId are required to join")
		return
	}
	rm := g.manager.GetOrCreate(p.RoomID)
	if rm.HasPlayer(p.UserID) {
		g.log.Infow("join ignored, player already seated", "identity", p.UserID, "room", p.RoomID)
		return
	}
	user, ok := g.users.FindUser(p.UserID)
	if !ok {
		g.hub.sendTo(c.ID, EventError, "user not found: "+p.UserID)
		return
	}
	player := room.NewPlayer(user.ID, user.Name, p.RoomID, user.Balance)
	if err := rm.Join(player); err != nil {
		g.hub.sendTo(c.ID, EventError, err.Error())
		return
	}
	g.hub.joinRoom(c.ID, p.RoomID)
	g.sessions.BindRoom(c.ID, p.RoomID)
	g.log.Infow("player joined room", "identity", p.UserID, "name", user.Name, "room", p.RoomID)
	g.BroadcastRoom(p.RoomID)
}

func (g *Gateway) handleLeave(c *Client, data json.RawMessage) {
	var p LeaveRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		g.hub.sendTo(c.ID, EventError, "roomId is required to leave")
		return
	}
	identity, ok := g.sessions.Identity(c.ID)
	if !ok {
		g.log.Warnw("leave from unbound connection", "conn", c.ID)
		return
	}
	rm, ok := g.manager.Get(p.RoomID)
	if !ok {
		g.log.Warnw("leave for unknown room", "room", p.RoomID)
		return
	}
	g.hub.leaveRoom(c.ID, p.RoomID)
	g.sessions.UnbindRoom(c.ID)
	if rm.Leave(identity) {
		g.log.Infow("player left room", "identity", identity, "room", p.RoomID)
	}
	g.BroadcastRoom(p.RoomID)
}

func (g *Gateway) handleBet(c *Client, data json.RawMessage) {
	var p BetPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		g.hub.sendTo(c.ID, EventBetError, "roomId and chips are required to bet")
		return
	}
	identity, ok := g.sessions.Identity(c.ID)
	if !ok {
		g.hub.sendTo(c.ID, EventBetError, "connection has no bound player")
		return
	}
	rm, ok := g.manager.Get(p.RoomID)
	if !ok {
		g.hub.sendTo(c.ID, EventBetError, "room not found: "+p.RoomID)
		return
	}
	started, err := rm.PlaceBet(identity, p.Chips)
	if err != nil {
		g.hub.sendTo(c.ID, EventBetError, err.Error())
		return
	}
	if started {
		g.log.Infow("all bets placed, round started", "room", p.RoomID)
	}
	g.BroadcastRoom(p.RoomID)
}

func (g *Gateway) handleAction(c *Client, data json.RawMessage) {
	var p ActionPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Type == "" {
		g.hub.sendTo(c.ID, EventActionError, "roomId and type are required to act")
		return
	}
	identity, ok := g.sessions.Identity(c.ID)
	if !ok {
		g.hub.sendTo(c.ID, EventActionError, "connection has no bound player")
		return
	}
	rm, ok := g.manager.Get(p.RoomID)
	if !ok {
		g.hub.sendTo(c.ID, EventActionError, "room not found: "+p.RoomID)
		return
	}
	over, err := rm.Act(identity, p.Type)
	if err != nil {
		g.hub.sendTo(c.ID, EventActionError, err.Error())
		return
	}
	if over {
		g.archiveRound(rm)
	}
	g.BroadcastRoom(p.RoomID)
}

func (g *Gateway) handleRestart(c *Client, data json.RawMessage) {
	var p RestartPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		g.hub.sendTo(c.ID, EventRestartError, "roomId is required to restart")
		return
	}
	rm, ok := g.manager.Get(p.RoomID)
	if !ok {
		g.hub.sendTo(c.ID, EventRestartError, "room not found: "+p.RoomID)
		return
	}
	rm.Reset()
	g.log.Infow("room restarted", "room", p.RoomID)
	g.BroadcastRoom(p.RoomID)
}

// handleChat relays without touching room state; it is not gated by phase.
func (g *Gateway) handleChat(c *Client, data json.RawMessage) {
	var p ChatMessage
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		g.hub.sendTo(c.ID, EventError, "roomId is required to chat")
		return
	}
	if _, ok := g.manager.Get(p.RoomID); !ok {
		g.hub.sendTo(c.ID, EventError, "room not found: "+p.RoomID)
		return
	}
	g.hub.toRoom(p.RoomID, EventReceiveMessage, p)
}

// disconnect releases the session bindings and applies the disconnect
// semantics to the bound room, if any. Safe to reach for already-released
// connections.
func (g *Gateway) disconnect(c *Client) {
	g.hub.remove(c.ID)
	identity, roomID := g.sessions.Release(c.ID)
	if identity == "" || roomID == "" {
		g.log.Debugw("disconnect without full session", "conn", c.ID)
		return
	}
	rm, ok := g.manager.Get(roomID)
	if !ok {
		g.log.Warnw("disconnect for unknown room", "room", roomID)
		return
	}
	if rm.MarkDisconnected(identity) {
		g.log.Infow("player disconnected", "identity", identity, "room", roomID)
		g.BroadcastRoom(roomID)
	}
}

// archiveRound hands the final snapshot and balances to the persistence
// collaborator for every seated player. In-memory state is already applied
// and is never rolled back on collaborator failure.
func (g *Gateway) archiveRound(rm *room.Room) {
	state := rm.Snapshot()
	for _, ps := range state.Players {
		u, ok := g.users.FindUser(ps.ID)
		if !ok {
			g.log.Warnw("cannot archive round for unknown user", "identity", ps.ID)
			continue
		}
		u.Balance = ps.Balance
		if err := g.archive.RecordRoundResult(ps.ID, state); err != nil {
			g.log.Errorw("record round result", "identity", ps.ID, "error", err)
		}
		if err := g.archive.UpdateUserBalance(ps.ID, u); err != nil {
			g.log.Errorw("update user balance", "identity", ps.ID, "error", err)
		}
	}
}

// BroadcastRoom pushes the room snapshot to its members and the full room
// list to every connected client.
func (g *Gateway) BroadcastRoom(roomID string) {
	if rm, ok := g.manager.Get(roomID); ok {
		g.hub.toRoom(roomID, EventRoomUpdate, rm.Snapshot())
	}
	g.hub.toAll(EventRoomsUpdate, g.manager.Snapshots())
}
