package progress

import (
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/deepcode-dev/deepcode/internal/log"
)

// DefaultURL is the engine's push channel address.
const DefaultURL = "ws://localhost:8000/ws/progress"

// Listener owns one subscription to the push channel. Frames arrive on
// Events in arrival order; the channel is closed when the connection
// drops or Close is called. There is no reconnection: a dead channel is
// logged and abandoned, and the session simply stops receiving updates.
type Listener struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
	logger *log.Logger
}

// Dial connects to the push channel at url (DefaultURL if empty) and
// starts the read loop. logger may be nil.
func Dial(url string, logger *log.Logger) (*Listener, error) {
	if url == "" {
		url = DefaultURL
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting progress channel: %w", err)
	}

	l := &Listener{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		logger: logger,
	}
	go l.readLoop()
	return l, nil
}

// Events returns the frame stream. The channel closes when the
// subscription ends, for any reason.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Close tears the subscription down. Safe to call more than once.
func (l *Listener) Close() {
	select {
	case <-l.done:
		return
	default:
	}
	close(l.done)
	_ = l.conn.Close()
}

func (l *Listener) readLoop() {
	defer close(l.events)

	for {
		var ev Event
		if err := l.conn.ReadJSON(&ev); err != nil {
			select {
			case <-l.done:
				// Deliberate teardown; nothing to report.
			default:
				_ = l.logger.Append(log.LogEvent{
					Event: log.EventChannelClosed,
					Error: err.Error(),
				})
			}
			return
		}

		select {
		case l.events <- ev:
		case <-l.done:
			return
		}
	}
}
