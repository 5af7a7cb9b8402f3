// Package websocket implements the Hub that fans contest events out to
// connected clients. Day processing and lock changes are pushed here by the
// contest service; the /api/v1/updates stream handler registers one Client per
// open connection and relays whatever lands on its Send channel. The pool has
// exactly one contest, so there is a single audience — no per-topic routing.
package websocket

import "sync"

// Client represents a single connected stream consumer.
type Client struct {
	// Send is a buffered channel of outgoing event payloads. The Hub writes
	// here and the stream handler drains it onto the wire. If it fills up the
	// client is considered too slow and gets dropped.
	Send chan []byte
}

// NewClient creates a Client with a modest send buffer. Contest events are
// rare (a day is processed once), so a small buffer is plenty of slack.
func NewClient() *Client {
	return &Client{Send: make(chan []byte, 16)}
}

// Hub manages all connected clients. It runs in its own goroutine and
// processes registration, unregistration, and broadcast events through
// channels — keeping all map mutation on a single goroutine, which avoids
// data races (concurrent map writes panic in Go).
type Hub struct {
	// clients is a set of connected clients. Using map[*Client]bool as a set
	// is a common Go idiom because Go has no built-in set type.
	clients map[*Client]bool

	broadcast  chan []byte  // Incoming event payloads to fan out to every client
	register   chan *Client // A new client connected and should be tracked
	unregister chan *Client // A client disconnected and should be removed

	// mu protects clients for the broadcast read path while the main loop
	// mutates it. Broadcasts only read the set, so an RWMutex lets them
	// overlap with each other.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub. The broadcast channel is buffered so
// the contest service never blocks on a briefly busy Hub goroutine; register
// and unregister are unbuffered because those need to complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine
// ("go hub.Run()") and blocks forever, handling one event at a time.
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Closing Send tells the stream handler's drain loop to stop.
				close(client.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			// Snapshot the set under the read lock so a slow unregister can't
			// race the fan-out below.
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.Send <- data:
				// A full buffer means the client isn't draining — drop it
				// rather than stalling the broadcast for everyone else.
				default:
					h.Unregister(client)
				}
			}
		}
	}
}

// Broadcast queues an event payload for delivery to every connected client.
// This is the contest.Broadcaster implementation the service calls.
func (h *Hub) Broadcast(data []byte) {
	h.broadcast <- data
}

// Register adds a client so it starts receiving broadcasts.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client. Safe to call from any goroutine; actual
// removal happens on the Hub's own loop.
func (h *Hub) Unregister(client *Client) {
	// Run in a goroutine so the broadcast case above can't deadlock itself
	// by sending to the channel it is about to service.
	go func() { h.unregister <- client }()
}
