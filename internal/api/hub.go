package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
)

const (
	writeTimeout = 5 * time.Second
	clientBuffer = 4
)

// Update is the message pushed to live clients.
type Update struct {
	Type   string               `json:"type"`
	Scores []leaderboard.Record `json:"scores"`
}

type client struct {
	conn *websocket.Conn
	send chan []leaderboard.Record
}

// Hub fans leaderboard snapshots out to websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{clients: make(map[*client]struct{}), log: logger}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues top for every client. Clients whose queue is full are
// dropped; their connections are closed without holding the hub lock.
func (h *Hub) Broadcast(top []leaderboard.Record) {
	var slow []*client
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- top:
		default:
			delete(h.clients, c)
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.log.Warn("dropping slow live client")
		go c.conn.Close(websocket.StatusPolicyViolation, "too slow")
	}
}

// CloseAll disconnects every client and waits for the close handshakes.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	all := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		all = append(all, c)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range all {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}()
	}
	wg.Wait()
}

// ServeClient upgrades the request, sends initial, then forwards broadcasts
// until the peer disconnects. Incoming messages are ignored.
func (h *Hub) ServeClient(w http.ResponseWriter, r *http.Request, initial []leaderboard.Record) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error("failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	c := &client{conn: conn, send: make(chan []leaderboard.Record, clientBuffer)}
	h.add(c)
	defer h.remove(c)

	ctx := conn.CloseRead(r.Context())
	if err := write(ctx, conn, initial); err != nil {
		h.log.Debug("live client write failed", "err", err)
		return
	}
	h.log.Debug("live client connected", "clients", h.Len())

	for {
		select {
		case <-ctx.Done():
			return
		case top := <-c.send:
			if err := write(ctx, conn, top); err != nil {
				h.log.Debug("live client write failed", "err", err)
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, top []leaderboard.Record) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, Update{Type: "leaderboard", Scores: top})
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}
