package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"routedash/internal/hub"
	"routedash/internal/metrics"
)

// WSHandler upgrades dashboard connections and relays route-updated events
// for the routes each client subscribes to.
type WSHandler struct {
	hub     *hub.Hub
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewWSHandler(h *hub.Hub, m *metrics.Collector, logger *slog.Logger) *WSHandler {
	return &WSHandler{hub: h, metrics: m, logger: logger}
}

type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SubscribePayload struct {
	RouteIDs []string `json:"routeIds"`
}

type AckMessage struct {
	Type     string   `json:"type"`
	RouteIDs []string `json:"routeIds"`
}

type PongMessage struct {
	Type string `json:"type"`
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.logger.Error("websocket accept failed", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := hub.NewClient(clientID, 256)

	h.hub.Register(client)
	if h.metrics != nil {
		h.metrics.WSClients.Inc()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go h.writeLoop(ctx, conn, client)

	h.readLoop(ctx, conn, client)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	defer func() {
		h.hub.Unregister(client)
		if h.metrics != nil {
			h.metrics.WSClients.Dec()
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				h.logger.Debug("websocket read error", "client_id", client.ID, "error", err)
			}
			return
		}

		if msgType != websocket.MessageText {
			continue
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("invalid message format", "client_id", client.ID, "error", err)
			continue
		}

		switch msg.Type {
		case "subscribe":
			var payload SubscribePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			h.hub.Subscribe(client, payload.RouteIDs)
			h.send(client, AckMessage{Type: "subscribed", RouteIDs: payload.RouteIDs})

		case "unsubscribe":
			var payload SubscribePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			h.hub.Unsubscribe(client, payload.RouteIDs)
			h.send(client, AckMessage{Type: "unsubscribed", RouteIDs: payload.RouteIDs})

		case "ping":
			h.send(client, PongMessage{Type: "pong"})
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-client.Send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				h.logger.Debug("websocket write error", "client_id", client.ID, "error", err)
				return
			}
		}
	}
}

func (h *WSHandler) send(client *hub.Client, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
