package hub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	return h, cancel
}

func waitClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d", want)
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	h, cancel := testHub(t)
	defer cancel()

	subscribed := NewClient("c1", 8)
	other := NewClient("c2", 8)
	h.Register(subscribed)
	h.Register(other)
	waitClients(t, h, 2)

	h.Subscribe(subscribed, []string{"r1"})
	h.Subscribe(other, []string{"r2"})

	h.BroadcastRouteUpdated("r1", 3)

	select {
	case data := <-subscribed.Send:
		var evt RouteEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.Type != EventRouteUpdated || evt.RouteID != "r1" || evt.Stops != 3 {
			t.Fatalf("event = %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}

	select {
	case data := <-other.Send:
		t.Fatalf("unsubscribed client received %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	h, cancel := testHub(t)
	defer cancel()

	client := NewClient("c1", 8)
	h.Register(client)
	waitClients(t, h, 1)

	h.Subscribe(client, []string{"r1", "r2"})
	h.Unsubscribe(client, []string{"r1"})

	h.BroadcastRouteUpdated("r1", 1)
	h.BroadcastRouteUpdated("r2", 2)

	select {
	case data := <-client.Send:
		var evt RouteEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.RouteID != "r2" {
			t.Fatalf("received event for %q after unsubscribing", evt.RouteID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscription never delivered")
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h, cancel := testHub(t)
	defer cancel()

	client := NewClient("c1", 8)
	h.Register(client)
	waitClients(t, h, 1)

	h.Unregister(client)
	waitClients(t, h, 0)

	select {
	case _, open := <-client.Send:
		if open {
			t.Fatal("send channel still open after unregister")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel never closed")
	}
}
