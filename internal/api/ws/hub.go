package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// MatchRegistry is what the hub needs from the match store.
type MatchRegistry interface {
	GetMatch(code string) (ok bool)
	PeerCountChanged(code string, peers int)
}

// Control frames injected into the stream for the peers' transports.
// They sit outside the game protocol and are filtered client-side.
const (
	readyFrame = `{"type":"_ready"}`
	leftFrame  = `{"type":"_peerLeft"}`
)

// Hub pairs exactly two websocket peers per match code and forwards
// their frames to each other verbatim and in order. It is the only
// relay in the system and carries no game knowledge at all.
type Hub struct {
	mu       sync.Mutex
	matches  map[string][]*peerConn
	registry MatchRegistry
}

type peerConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (p *peerConn) write(frame []byte) error {
	p.wmu.Lock()
	defer p.wmu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, frame)
}

func NewHub(registry MatchRegistry) *Hub {
	return &Hub{
		matches:  make(map[string][]*peerConn),
		registry: registry,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// HandleWS upgrades the connection and joins it to its match. The
// first peer waits; once the second arrives both get a ready frame
// and every later frame is forwarded to the other side.
func (h *Hub) HandleWS(c *gin.Context) {
	code := c.Query("match_code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing match_code"})
		return
	}
	if !h.registry.GetMatch(code) {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}
	pc := &peerConn{conn: conn}

	h.mu.Lock()
	peers := h.matches[code]
	if len(peers) >= 2 {
		h.mu.Unlock()
		log.Printf("match %s already has two peers", code)
		_ = conn.Close()
		return
	}
	h.matches[code] = append(peers, pc)
	full := len(h.matches[code]) == 2
	h.mu.Unlock()

	log.Printf("peer joined match %s", code)
	h.registry.PeerCountChanged(code, h.peerCount(code))

	if full {
		h.mu.Lock()
		both := append([]*peerConn(nil), h.matches[code]...)
		h.mu.Unlock()
		for _, p := range both {
			if err := p.write([]byte(readyFrame)); err != nil {
				log.Printf("failed to send ready frame: %v", err)
			}
		}
	}

	defer h.drop(code, pc)

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if other := h.other(code, pc); other != nil {
			if err := other.write(frame); err != nil {
				log.Printf("failed to forward frame in match %s: %v", code, err)
				return
			}
		}
	}
}

func (h *Hub) other(code string, self *peerConn) *peerConn {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.matches[code] {
		if p != self {
			return p
		}
	}
	return nil
}

func (h *Hub) peerCount(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.matches[code])
}

func (h *Hub) drop(code string, self *peerConn) {
	h.mu.Lock()
	peers := h.matches[code]
	for i, p := range peers {
		if p == self {
			h.matches[code] = append(peers[:i], peers[i+1:]...)
			break
		}
	}
	remaining := append([]*peerConn(nil), h.matches[code]...)
	if len(h.matches[code]) == 0 {
		delete(h.matches, code)
	}
	h.mu.Unlock()

	_ = self.conn.Close()
	log.Printf("peer left match %s", code)
	h.registry.PeerCountChanged(code, len(remaining))

	// A dropped connection ends the session; tell the survivor.
	for _, p := range remaining {
		if err := p.write([]byte(leftFrame)); err != nil {
			log.Printf("failed to send peer-left frame: %v", err)
		}
	}
}
