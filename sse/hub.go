// Package sse streams live appointment events to clinic dashboards.
package sse

import (
	"sync"
	"time"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/events"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	clientBuffer      = 16
	heartbeatInterval = 25 * time.Second
)

// Hub fans events out to the dashboards connected for each center.
type Hub struct {
	mu      sync.Mutex
	clients map[uint]map[chan events.Event]struct{}
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uint]map[chan events.Event]struct{}),
		log:     log,
	}
}

// Register adds a client for centerID.
func (h *Hub) Register(centerID uint) chan events.Event {
	client := make(chan events.Event, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[centerID] == nil {
		h.clients[centerID] = make(map[chan events.Event]struct{})
	}
	h.clients[centerID][client] = struct{}{}
	return client
}

// Unregister removes the client. Calling it twice is harmless.
func (h *Hub) Unregister(centerID uint, client chan events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(centerID, client)
}

func (h *Hub) remove(centerID uint, client chan events.Event) {
	set, ok := h.clients[centerID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client)
	if len(set) == 0 {
		delete(h.clients, centerID)
	}
}

// Broadcast never blocks: a client whose buffer is full is dropped.
func (h *Hub) Broadcast(centerID uint, event events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[centerID] {
		select {
		case client <- event:
		default:
			h.log.Warn("dropping slow dashboard client", zap.Uint("center_id", centerID))
			h.remove(centerID, client)
		}
	}
}

func (h *Hub) clientCount(centerID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[centerID])
}

// Stream returns the handler that keeps a dashboard connection open.
// centerOf reads the authenticated center from the request.
func (h *Hub) Stream(centerOf func(*gin.Context) uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		centerID := centerOf(c)
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		client := h.Register(centerID)
		defer h.Unregister(centerID, client)

		c.SSEvent("connected", gin.H{"centerId": centerID})
		c.Writer.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-client:
				if !ok {
					return
				}
				c.SSEvent(event.Type, event)
				c.Writer.Flush()
			case <-heartbeat.C:
				c.SSEvent("ping", time.Now().Unix())
				c.Writer.Flush()
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
