package ws

import "encoding/json"

// Inbound event names. The gateway dispatches over this closed set; an
// unknown name is answered with an error event, never silently ignored.
const (
	EventJoinRoom     = "joinRoom"
	EventLeaveRoom    = "leaveRoom"
	EventPlayerBet    = "playerBet"
	EventPlayerAction = "playerAction"
	EventRestartGame  = "restartGame"
	EventSendMessage  = "sendMessage"
)

// Outbound event names.
const (
	EventRoomsUpdate    = "roomsUpdate"
	EventRoomUpdate     = "roomUpdate"
	EventReceiveMessage = "receiveMessage"
	EventError          = "error"
	EventBetError       = "betError"
	EventActionError    = "actionError"
	EventRestartError   = "restartError"
)

// Envelope frames every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinRoomPayload struct {
	UserID string `json:"userId"`
	RoomID string `json:"roomId"`
}

type LeaveRoomPayload struct {
	RoomID string `json:"roomId"`
}

type BetPayload struct {
	RoomID string   `json:"roomId"`
	Chips  []string `json:"chips"`
}

type ActionPayload struct {
	RoomID string `json:"roomId"`
	Type   string `json:"type"`
}

type RestartPayload struct {
	RoomID string `json:"roomId"`
}

type ChatMessage struct {
	RoomID  string `json:"roomId"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
}
