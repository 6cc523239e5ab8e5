// Package broadcast pushes reconciled snapshots to websocket subscribers.
// The hub owns the canonical "current snapshot" reference: the scheduler
// hands it a new snapshot once per successful cycle, subscribers receive it
// immediately, and late joiners get the current one on connect.
package broadcast

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/sa-express-news/2018-primaries-server/internal/metrics"
	"github.com/sa-express-news/2018-primaries-server/internal/models"
)

const (
	writeWait = 10 * time.Second

	// Delivery is best effort. A subscriber that can't drain its send
	// buffer is dropped rather than allowed to stall the broadcast.
	sendBufferSize = 8
)

// Hub fans snapshots out to connected websocket clients.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *logrus.Logger

	mu       sync.RWMutex
	clients  map[uuid.UUID]*client
	current  []byte // serialized current snapshot, nil before the first cycle
	snapshot models.Snapshot
	hasData  bool
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new broadcast hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Subscribers are public news pages; cross-origin is the norm.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[uuid.UUID]*client),
	}
}

// ServeHTTP upgrades the connection and registers the subscriber. The
// current snapshot, when one exists, is the first frame every subscriber
// receives.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade subscriber connection")
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	if h.current != nil {
		c.send <- h.current
	}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.SubscribersConnected.Set(float64(count))
	h.logger.WithFields(logrus.Fields{"client": c.id, "subscribers": count}).Info("Subscriber connected")

	go h.writePump(c)
	go h.readPump(c)
}

// Publish stores the snapshot as current and broadcasts it to every
// subscriber. Serialization happens once per snapshot, not per client.
func (h *Hub) Publish(snapshot models.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.current = payload
	h.snapshot = snapshot
	h.hasData = true
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer: close its channel, writePump tears it down.
			h.logger.WithField("client", c.id).Warn("Dropping slow subscriber")
			h.removeLocked(c)
		}
	}
	h.mu.Unlock()

	metrics.BroadcastsTotal.Inc()
	return nil
}

// Current returns the most recently published snapshot.
func (h *Hub) Current() (models.Snapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.hasData {
		return models.Snapshot{}, models.ErrEmptySnapshot
	}
	return h.snapshot, nil
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump drains inbound frames so pings and close handshakes are
// processed; subscribers have nothing to say to us.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	count := len(h.clients)
	h.mu.Unlock()
	metrics.SubscribersConnected.Set(float64(count))
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}
