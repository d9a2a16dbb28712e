// Package ws streams live state to connected views over a websocket: a
// once-per-second countdown tick per connection and a broadcast whenever the
// document changes. The tick loop stops as soon as its connection goes away;
// nothing keeps running for a torn-down view.
package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hilal-labs/ramadan-companion/internal/progress"
	"github.com/hilal-labs/ramadan-companion/internal/state"
	"github.com/hilal-labs/ramadan-companion/internal/timesvc"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

const (
	MessageTypeTick = "tick"
	MessageTypeData = "data"
)

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
	Time int64  `json:"time"`
}

// TickData is the per-second countdown payload.
type TickData struct {
	Clock     string `json:"clock"` // "HH:mm:ss"
	Next      string `json:"next,omitempty"`
	At        string `json:"at,omitempty"`
	Countdown string `json:"countdown,omitempty"` // "HH:MM:SS"
	Active    string `json:"active,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// Hub tracks connected clients and fans document-change events out to them.
type Hub struct {
	provider     *state.Provider
	prayers      *timesvc.PrayerTimesClient
	activeWindow time.Duration

	mu      sync.Mutex
	clients map[*client]bool

	upgrader websocket.Upgrader
}

func NewHub(provider *state.Provider, prayers *timesvc.PrayerTimesClient, activeWindow time.Duration) *Hub {
	h := &Hub{
		provider:     provider,
		prayers:      prayers,
		activeWindow: activeWindow,
		clients:      map[*client]bool{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	provider.Subscribe(h.broadcastData)
	return h
}

// broadcastData tells every connected view to re-read the document.
func (h *Hub) broadcastData() {
	msg := Message{Type: MessageTypeData, Time: time.Now().Unix()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// slow consumer; it will catch up on its next tick
		}
	}
}

// Handler upgrades the connection and runs it until the peer goes away.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("ws: upgrade failed")
			return
		}

		c := &client{
			conn: conn,
			send: make(chan Message, 16),
			done: make(chan struct{}),
		}

		h.mu.Lock()
		h.clients[c] = true
		h.mu.Unlock()

		go h.tickLoop(c)
		go c.writePump()
		c.readPump() // blocks for the connection's lifetime

		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
	}
}

// tickLoop recomputes the countdown every second for one connection. Times
// are fetched once per connection; the aladhan client's day cache makes
// reconnects cheap.
func (h *Hub) tickLoop(c *client) {
	settings := h.provider.Data().Settings
	times, err := h.prayers.TimingsByCity(context.Background(), settings.City, settings.CalculationMethod, h.provider.Today())
	haveTimes := err == nil

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := h.provider.Now()
			tick := TickData{Clock: now.Format("15:04:05")}
			if haveTimes {
				ordered := times.Ordered()
				if next := progress.Next(ordered, now); next != nil {
					tick.Next = next.Name
					tick.At = next.At.Format("15:04")
					tick.Countdown = progress.FormatCountdown(next.Remaining)
				}
				tick.Active = progress.Active(ordered, now, h.activeWindow)
			}

			select {
			case c.send <- Message{Type: MessageTypeTick, Data: tick, Time: now.Unix()}:
			case <-c.done:
				return
			}
		}
	}
}

func (c *client) writePump() {
	pinger := time.NewTicker(pingPeriod)
	defer func() {
		pinger.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-pinger.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("ws: connection closed")
			}
			return
		}
	}
}
