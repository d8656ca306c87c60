package live

import (
	"context"
	"net/http"
	"strings"
	"sync"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
	"github.com/riskibarqy/league-portal/internal/platform/metrics"
)

const (
	// MessageSubscribed is the first frame a client receives once it joined
	// its room.
	MessageSubscribed = "subscribed"
	// MessageMatchesChanged tells subscribers to re-fetch the bracket.
	MessageMatchesChanged = "matches_changed"
)

const sendBuffer = 16

// Message is the frame the hub pushes to clients.
type Message struct {
	Type    string `json:"type"`
	SportID string `json:"sport_id"`
}

type broadcast struct {
	room    string
	payload []byte
}

// Hub fans change signals out to websocket clients grouped by sport id. One
// goroutine (Run) owns the room table.
type Hub struct {
	logger     *logging.Logger
	upgrader   websocket.Upgrader
	register   chan *client
	unregister chan *client
	broadcast  chan broadcast
	done       chan struct{}
	stopOnce   sync.Once
	rooms      map[string]map[*client]struct{}
}

func NewHub(allowedOrigins []string, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}

	return &Hub{
		logger: logger.Named("live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan broadcast, 64),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*client]struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			return

		case c := <-h.register:
			room, ok := h.rooms[c.room]
			if !ok {
				room = make(map[*client]struct{})
				h.rooms[c.room] = room
			}
			room[c] = struct{}{}
			metrics.LiveClientsGauge.Inc()
			if payload, err := sonic.Marshal(Message{Type: MessageSubscribed, SportID: c.room}); err == nil {
				c.send <- payload
			}
			h.logger.Debug("live client registered", "sport_id", c.room, "room_size", len(room))

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.payload:
				default:
					h.logger.Warn("live client too slow, dropping", "sport_id", msg.room)
					h.remove(c)
				}
			}
		}
	}
}

// MatchesChanged queues a change signal for every client watching sportID.
// It never blocks past ctx or hub shutdown.
func (h *Hub) MatchesChanged(ctx context.Context, sportID string) {
	payload, err := sonic.Marshal(Message{Type: MessageMatchesChanged, SportID: sportID})
	if err != nil {
		h.logger.ErrorContext(ctx, "encode live message failed", "sport_id", sportID, "error", err)
		return
	}

	select {
	case h.broadcast <- broadcast{room: sportID, payload: payload}:
	case <-h.done:
	case <-ctx.Done():
		h.logger.WarnContext(ctx, "live broadcast dropped", "sport_id", sportID, "error", ctx.Err())
	}
}

// Serve upgrades the request and subscribes the connection to sportID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sportID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: sportID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return nil
	case <-r.Context().Done():
		_ = conn.Close()
		return r.Context().Err()
	}

	go c.writePump()
	go c.readPump()
	return nil
}

func (h *Hub) remove(c *client) {
	room, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}

	delete(room, c)
	close(c.send)
	metrics.LiveClientsGauge.Dec()
	if len(room) == 0 {
		delete(h.rooms, c.room)
	}
}

func (h *Hub) closeAll() {
	for _, room := range h.rooms {
		for c := range room {
			h.remove(c)
		}
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
			continue
		}
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
