package http

import (
	"tilefront/internal/api/ws"
	"tilefront/internal/store"

	"github.com/gin-gonic/gin"
)

// registry adapts the match store to what the relay hub needs.
type registry struct {
	mem *store.MemoryStore
}

func (r registry) GetMatch(code string) bool {
	_, ok := r.mem.GetMatch(code)
	return ok
}

func (r registry) PeerCountChanged(code string, peers int) {
	if peers == 0 {
		// Codes are one-shot; an emptied match is gone for good.
		r.mem.DeleteMatch(code)
		return
	}
	match, ok := r.mem.GetMatch(code)
	if !ok {
		return
	}
	match.Peers = peers
	r.mem.SaveMatch(match)
}

func SetupRouter(mem *store.MemoryStore) *gin.Engine {
	r := gin.Default()
	hub := ws.NewHub(registry{mem: mem})

	// WebSocket relay between the two peers
	r.GET("/ws", hub.HandleWS)

	// --- MATCH ENDPOINTS ---
	r.POST("/create-match", CreateMatchHandler(mem))
	r.GET("/match/:code", MatchStatusHandler(mem))

	return r
}
