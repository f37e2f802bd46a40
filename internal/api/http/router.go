package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/api/ws"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
)

func NewRouter(gw *ws.Gateway, rm *room.Manager) *gin.Engine {
	r := gin.Default()

	// Game traffic travels over the WebSocket gateway.
	r.GET("/ws", gw.HandleWS)

	// Utility surface for operators and the lobby screen.
	r.GET("/healthz", HealthHandler())
	r.GET("/rooms", ListRoomsHandler(rm))
	r.POST("/admin/rooms/:id/restart", RestartRoomHandler(rm, gw))

	return r
}
