package websocket

import (
	"testing"
	"time"
)

func TestHubBroadcastReachesRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := NewClient()
	b := NewClient()
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast([]byte("day_processed"))

	for _, client := range []*Client{a, b} {
		select {
		case got := <-client.Send:
			if string(got) != "day_processed" {
				t.Fatalf("got %q", got)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for broadcast")
		}
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient()
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected Send to be closed, got a value")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Send to close")
	}

	// An unregistered client no longer receives broadcasts; this must not
	// panic or block either.
	hub.Broadcast([]byte("after"))
}
