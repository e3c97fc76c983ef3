package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/notify"
)

// DefaultQueueSize is the number of notifications a Hub buffers before it
// starts dropping them.
const DefaultQueueSize = 256

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local tool; the server binds to loopback by default.
	},
}

// Hub manages WebSocket clients and broadcasts session notifications.
// It implements notify.Notifier. Notifications are queued without blocking
// the caller and written by a single goroutine, so input capture never
// waits on a slow client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool

	queue     chan notify.Message
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64

	logger *zap.Logger
}

var _ notify.Notifier = (*Hub)(nil)

// NewHub creates a hub and starts its writer goroutine.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		clients: make(map[*websocket.Conn]bool),
		queue:   make(chan notify.Message, DefaultQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger.With(zap.String("component", "hub")),
	}
	go h.loop()
	return h
}

// HandleWebSocket upgrades the HTTP connection and registers the client.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) RecordingStatus(recording bool, sessionID string) {
	h.enqueue(notify.RecordingStatusMessage(recording, sessionID))
}

func (h *Hub) LiveEvent(rec event.Recorded) {
	h.enqueue(notify.LiveEventMessage(rec))
}

func (h *Hub) PlaybackFinished() {
	h.enqueue(notify.Message{Type: notify.KindPlaybackFinished})
}

func (h *Hub) FileSaveRequested() {
	h.enqueue(notify.Message{Type: notify.KindFileSaveRequested})
}

func (h *Hub) FileLoadRequested() {
	h.enqueue(notify.Message{Type: notify.KindFileLoadRequested})
}

// Dropped returns how many notifications were discarded because the queue
// was full or the hub was closed.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) enqueue(msg notify.Message) {
	select {
	case <-h.done:
		h.dropped.Add(1)
		return
	default:
	}
	select {
	case h.queue <- msg:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) loop() {
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			return
		case msg := <-h.queue:
			h.broadcast(msg)
		}
	}
}

func (h *Hub) broadcast(msg notify.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("websocket marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("websocket write failed", zap.Error(err))
			conn.Close()
			// The read goroutine removes the client.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the writer goroutine and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		<-h.stopped

		h.mu.RLock()
		defer h.mu.RUnlock()
		for conn := range h.clients {
			conn.Close()
		}
	})
}
