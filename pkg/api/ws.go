package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"safetrack/pkg/logger"
	"safetrack/pkg/models"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
	wsSendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn *websocket.Conn
	send chan any

	mu     sync.Mutex
	closed bool
}

// trySend queues msg for the client unless it has been dropped or its
// buffer is full.
func (c *wsClient) trySend(msg any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close shuts the send channel exactly once. Every later trySend refuses
// instead of panicking on the closed channel.
func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Hub tracks connected websocket clients and broadcasts ingested events
// to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	log     logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients: make(map[*wsClient]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Broadcast queues a message for every connected client. A client whose
// send buffer is full is dropped rather than allowed to stall the rest.
func (h *Hub) Broadcast(msg any) {
	h.mu.RLock()
	var slow []*wsClient
	for c := range h.clients {
		if !c.trySend(msg) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warning("dropping slow websocket client")
		h.unregister(c)
		c.conn.Close()
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	dropped := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		dropped = append(dropped, c)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, c := range dropped {
		c.close()
	}
}

// handleWebSocket upgrades the connection and runs the ingest loop. The
// edge detector streams fatigue events as plain JSON; every successfully
// ingested event is broadcast back to all connected clients, dashboards
// included.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", logger.Error(err))
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan any, wsSendBuffer),
	}
	s.hub.register(client)
	s.log.Info("websocket client connected", logger.String("remote", r.RemoteAddr))

	go s.writePump(client)
	s.readPump(r, client)
}

func (s *Server) readPump(r *http.Request, client *wsClient) {
	defer func() {
		s.hub.unregister(client)
		client.conn.Close()
		s.log.Info("websocket client disconnected", logger.String("remote", r.RemoteAddr))
	}()

	client.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		var event models.VehicleEvent
		if err := client.conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warning("websocket read failed", logger.Error(err))
			}
			return
		}

		resp, err := s.svc.Event().Ingest(r.Context(), &event)
		if err != nil {
			client.trySend(errorResponse{Error: "event rejected: " + err.Error()})
			continue
		}
		s.hub.Broadcast(resp)
	}
}

func (s *Server) writePump(client *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
