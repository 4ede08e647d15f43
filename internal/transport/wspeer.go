package transport

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned by Send after either end has closed.
var ErrClosed = errors.New("transport closed")

// Control frames injected by the relay, outside the game protocol.
// The peer transport consumes them; the session never sees them.
const (
	relayReadyFrame = `{"type":"_ready"}`
	relayLeftFrame  = `{"type":"_peerLeft"}`
)

// WSPeer is a gorilla/websocket channel to the other player, routed
// through the rendezvous relay. The relay forwards frames verbatim
// and FIFO, so the websocket's own ordering guarantee carries the
// whole consistency argument.
type WSPeer struct {
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool

	onMessage func(frame []byte)
	onReady   func()
	onClose   func()
}

// DialRelay connects to the relay's websocket endpoint for a match
// code, e.g. ws://host/ws?match_code=XXXX.
func DialRelay(url string) (*WSPeer, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &WSPeer{conn: conn}, nil
}

// SetHandlers installs the inbound callbacks. onReady fires when the
// relay reports both peers present; onClose fires once, on any
// terminal transport condition.
func (p *WSPeer) SetHandlers(onMessage func(frame []byte), onReady, onClose func()) {
	p.onMessage = onMessage
	p.onReady = onReady
	p.onClose = onClose
}

// ReadLoop pumps inbound frames until the connection dies. It blocks;
// run it on its own goroutine.
func (p *WSPeer) ReadLoop() {
	defer p.fireClose()
	for {
		_, frame, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		switch string(frame) {
		case relayReadyFrame:
			if p.onReady != nil {
				p.onReady()
			}
		case relayLeftFrame:
			return
		default:
			if p.onMessage != nil {
				p.onMessage(frame)
			}
		}
	}
}

func (p *WSPeer) Send(frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.conn.WriteMessage(websocket.TextMessage, frame)
}

func (p *WSPeer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	return p.conn.Close()
}

func (p *WSPeer) fireClose() {
	p.mu.Lock()
	alreadyClosed := p.closed
	p.closed = true
	p.mu.Unlock()
	_ = p.conn.Close()
	if !alreadyClosed && p.onClose != nil {
		p.onClose()
	}
}
