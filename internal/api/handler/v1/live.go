package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1/response"
	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
)

var errHubStopped = errors.New("live scan feed is not running")

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

type OriginChecker interface {
	Allow(origin string) bool
}

type liveClient struct {
	conn           *websocket.Conn
	send           chan []byte
	announcementID uint
}

// ScanHub fans scan results out to the scanner screens watching the
// announcement they belong to. Run must be serving for HandleLive to accept
// connections; until then, and after it returns, HandleLive answers 503.
type ScanHub struct {
	upgrader websocket.Upgrader
	running  atomic.Bool

	clients      map[*liveClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan domain.ScanResult
	register     chan *liveClient
	unregister   chan *liveClient
	done         chan struct{}
}

func NewScanHub(origins OriginChecker) *ScanHub {
	return &ScanHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins.Allow(origin)
			},
		},
		clients:    make(map[*liveClient]struct{}),
		broadcast:  make(chan domain.ScanResult, 256),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then drops every client. A hub
// runs at most once; later calls return immediately.
func (h *ScanHub) Run(ctx context.Context) {
	if !h.running.CompareAndSwap(false, true) {
		return
	}

	defer func() {
		close(h.done)
		h.clientsMutex.Lock()
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		h.clientsMutex.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case result := <-h.broadcast:
			h.fanOut(result)
		}
	}
}

func (h *ScanHub) fanOut(result domain.ScanResult) {
	message, err := json.Marshal(result)
	if err != nil {
		zap.L().Error("failed to encode scan result", zap.Error(err))
		return
	}

	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	for client := range h.clients {
		if client.announcementID != result.AnnouncementID {
			continue
		}
		select {
		case client.send <- message:
		default:
			// Too slow to keep up.
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// Publish queues result for delivery. It never blocks the scan request; when
// the queue is full the result is dropped from the live feed only.
func (h *ScanHub) Publish(result domain.ScanResult) {
	select {
	case h.broadcast <- result:
	default:
		zap.L().Warn("live scan feed is full, dropping result",
			zap.Uint("announcement_id", result.AnnouncementID),
			zap.String("status", string(result.Status)),
		)
	}
}

func (h *ScanHub) serving() bool {
	if !h.running.Load() {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *ScanHub) connected() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return len(h.clients)
}

// HandleLive godoc
// @Summary      Live scan feed
// @Description  Upgrades to a WebSocket that receives every validation outcome of the announcement as JSON.
// @Tags         tickets
// @Produce      json
// @Param        announcementID  path      int  true  "announcement ID"
// @Success      101             {string}  string  "Switching Protocols"
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      503             {object}  response.Err
// @Router       /tickets/live/{announcementID} [get]
// @Security     BearerAuth
func (h *ScanHub) HandleLive(ctx *gin.Context) {
	announcementID, ok := parseID(ctx, "announcementID")
	if !ok {
		return
	}
	if !h.serving() {
		response.RenderErr(ctx, response.ErrServiceUnavailable(errHubStopped))
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already answered the client.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		conn:           conn,
		send:           make(chan []byte, sendBuffer),
		announcementID: announcementID,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches the connection; scanners do not send anything.
func (c *liveClient) readPump(h *ScanHub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("live feed closed", zap.Error(err))
			}
			return
		}
	}
}
