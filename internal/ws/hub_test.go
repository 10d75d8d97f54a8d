package ws

import (
	"encoding/json"
	"testing"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()

	a := NewClient("0xaaa", nil, hub)
	b := NewClient("0xbbb", nil, hub)
	hub.register(a)
	hub.register(b)

	hub.Broadcast(map[string]string{"kind": "claim", "address": "0xaaa"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var got map[string]string
			if err := json.Unmarshal(msg, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got["kind"] != "claim" {
				t.Errorf("kind = %q, want claim", got["kind"])
			}
		default:
			t.Errorf("client %s received nothing", c.Address)
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()

	slow := NewClient("0xslow", nil, hub)
	hub.register(slow)

	// Fill the send buffer so the next broadcast cannot be queued.
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("{}")
	}

	hub.Broadcast(map[string]string{"kind": "hatch"})

	if n := hub.ClientCount(); n != 0 {
		t.Errorf("client count = %d, want 0 after dropping slow client", n)
	}
}

func TestHubUnregisterIdempotent(t *testing.T) {
	hub := NewHub()
	c := NewClient("0xccc", nil, hub)
	hub.register(c)

	hub.unregister(c)
	hub.unregister(c) // second call must not panic on a closed channel

	if n := hub.ClientCount(); n != 0 {
		t.Errorf("client count = %d, want 0", n)
	}
}
