package websocket

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"botnest/internal/services"
)

// writeWait bounds each frame write so one stalled viewer cannot hold the hub.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub streams published chat exchanges to every connected operator.
type Hub struct {
	mu          sync.RWMutex
	connections []*websocket.Conn
	redisClient *redis.Client
	cancel      context.CancelFunc
}

// NewHub with a nil client still accepts connections but never delivers to them.
func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{redisClient: redisClient}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(conn)

	// The feed is read-only; reading just detects the disconnect.
	go func() {
		defer h.unregisterConnection(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// ConnectionCount reports how many operators are attached.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) registerConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections = append(h.connections, conn)

	// Subscribe with the first connection only
	if len(h.connections) == 1 && h.redisClient != nil {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancel = cancel
		go h.subscribeToPubSub(ctx)
	}

	log.Printf("WebSocket connected: %s (total: %d)", conn.RemoteAddr(), len(h.connections))
}

func (h *Hub) unregisterConnection(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(conn)
}

// removeLocked closes conn and drops it from the hub. Callers hold h.mu.
// It is a no-op for a connection already removed.
func (h *Hub) removeLocked(conn *websocket.Conn) {
	conn.Close()

	found := false
	for i, c := range h.connections {
		if c == conn {
			h.connections = append(h.connections[:i], h.connections[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return
	}

	if len(h.connections) == 0 && h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}

	log.Printf("WebSocket disconnected: %s", conn.RemoteAddr())
}

func (h *Hub) subscribeToPubSub(ctx context.Context) {
	pubsub := h.redisClient.Subscribe(ctx, services.ExchangeChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

// broadcast holds the write lock: a websocket.Conn allows one writer at a time.
// A connection whose write fails or times out is dropped.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var failed []*websocket.Conn
	for _, conn := range h.connections {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("WebSocket write to %s failed: %v", conn.RemoteAddr(), err)
			failed = append(failed, conn)
		}
	}

	for _, conn := range failed {
		h.removeLocked(conn)
	}
}
