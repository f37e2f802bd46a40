package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/api/ws"
	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
)

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	}
}

// ListRoomsHandler serves the same snapshot projection the gateway
// broadcasts, for clients that poll before connecting.
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.Snapshots()})
	}
}

// RestartRoomHandler is the operator side of the unconditional reset. The
// same operation is reachable in-game through the restartGame event.
func RestartRoomHandler(rm *room.Manager, gw *ws.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		rx, ok := rm.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		rx.Reset()
		gw.BroadcastRoom(id)
		c.JSON(http.StatusOK, gin.H{"room": rx.Snapshot()})
	}
}
