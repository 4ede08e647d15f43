// Package transport abstracts the reliable, ordered, bidirectional
// channel the session runs over. The core only ever calls Send and
// receives inbound frames through a callback; connection lifecycle is
// reported as a single closed signal.
package transport

// Transport is a fire-and-forget sender over an established channel.
// Delivery must be FIFO and lossless; the protocol carries no
// sequence numbers of its own.
type Transport interface {
	Send(frame []byte) error
	Close() error
}

// Loopback is an in-process channel endpoint, used for hotseat play
// and tests. Frames are delivered synchronously and in order to the
// peer's receiver.
type Loopback struct {
	peer    *Loopback
	receive func(frame []byte)
	onClose func()
	closed  bool
}

// NewLoopbackPair returns two connected endpoints.
func NewLoopbackPair() (*Loopback, *Loopback) {
	a := &Loopback{}
	b := &Loopback{}
	a.peer = b
	b.peer = a
	return a, b
}

// SetReceiver installs the inbound-frame callback for this endpoint.
func (l *Loopback) SetReceiver(fn func(frame []byte)) { l.receive = fn }

// SetCloseHandler installs the peer-closed callback.
func (l *Loopback) SetCloseHandler(fn func()) { l.onClose = fn }

func (l *Loopback) Send(frame []byte) error {
	if l.closed || l.peer.closed {
		return ErrClosed
	}
	if l.peer.receive != nil {
		l.peer.receive(frame)
	}
	return nil
}

func (l *Loopback) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.peer.onClose != nil {
		l.peer.onClose()
	}
	return nil
}
