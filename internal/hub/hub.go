// Package hub fans route-updated events out to websocket clients subscribed
// by route id.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// RouteEvent announces that a route document changed server-side. Dashboard
// clients use it to refresh without waiting for the next poll tick.
type RouteEvent struct {
	Type      string    `json:"type"`
	RouteID   string    `json:"routeId"`
	Stops     int       `json:"stops"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const EventRouteUpdated = "route_updated"

type Client struct {
	ID     string
	Send   chan []byte
	routes map[string]struct{}
	mu     sync.RWMutex
}

func NewClient(id string, bufferSize int) *Client {
	return &Client{
		ID:     id,
		Send:   make(chan []byte, bufferSize),
		routes: make(map[string]struct{}),
	}
}

func (c *Client) AddRoutes(routeIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range routeIDs {
		c.routes[id] = struct{}{}
	}
}

func (c *Client) RemoveRoutes(routeIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range routeIDs {
		delete(c.routes, id)
	}
}

func (c *Client) Routes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	routes := make([]string, 0, len(c.routes))
	for id := range c.routes {
		routes = append(routes, id)
	}
	return routes
}

type Hub struct {
	mu           sync.RWMutex
	clients      map[*Client]struct{}
	routeClients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan RouteEvent

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:      make(map[*Client]struct{}),
		routeClients: make(map[string]map[*Client]struct{}),
		register:     make(chan *Client, 16),
		unregister:   make(chan *Client, 16),
		broadcast:    make(chan RouteEvent, 256),
		logger:       logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("client registered", "client_id", client.ID, "total", h.ClientCount())

		case client := <-h.unregister:
			h.removeClient(client)

		case evt := <-h.broadcast:
			h.fanout(evt)
		}
	}
}

func (h *Hub) Subscribe(client *Client, routeIDs []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.AddRoutes(routeIDs)

	for _, id := range routeIDs {
		if h.routeClients[id] == nil {
			h.routeClients[id] = make(map[*Client]struct{})
		}
		h.routeClients[id][client] = struct{}{}
	}
}

func (h *Hub) Unsubscribe(client *Client, routeIDs []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.RemoveRoutes(routeIDs)

	for _, id := range routeIDs {
		if h.routeClients[id] != nil {
			delete(h.routeClients[id], client)
			if len(h.routeClients[id]) == 0 {
				delete(h.routeClients, id)
			}
		}
	}
}

// BroadcastRouteUpdated queues a route-updated event; a full broadcast
// channel drops the event rather than blocking the writer.
func (h *Hub) BroadcastRouteUpdated(routeID string, stops int) {
	evt := RouteEvent{
		Type:      EventRouteUpdated,
		RouteID:   routeID,
		Stops:     stops,
		UpdatedAt: time.Now(),
	}
	select {
	case h.broadcast <- evt:
	default:
		h.logger.Warn("broadcast channel full, dropping event", "route_id", routeID)
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) fanout(evt RouteEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers, ok := h.routeClients[evt.RouteID]
	if !ok {
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return
	}

	for client := range subscribers {
		select {
		case client.Send <- data:
		default:
			h.logger.Debug("client send buffer full", "client_id", client.ID)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}

	for _, id := range client.Routes() {
		if h.routeClients[id] != nil {
			delete(h.routeClients[id], client)
			if len(h.routeClients[id]) == 0 {
				delete(h.routeClients, id)
			}
		}
	}

	delete(h.clients, client)
	close(client.Send)
	h.logger.Debug("client unregistered", "client_id", client.ID, "total", len(h.clients))
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.Send)
	}
	h.clients = make(map[*Client]struct{})
	h.routeClients = make(map[string]map[*Client]struct{})
}
