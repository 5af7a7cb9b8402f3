// Package handlers contains HTTP route handler functions for the Survivor Pool API.
// This file handles GET /api/v1/updates — a Server-Sent Events stream of contest
// updates (processed days, lock changes) so clients see results land without
// polling. SSE is one-directional server push over plain HTTP, which is all the
// pool needs: players never send anything over the stream.
package handlers

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ryankeefer-alt/SurvivorPool-website/internal/websocket"
)

// keepaliveInterval is how often an SSE comment line is written so proxies and
// load balancers don't reap the idle connection between contest events.
const keepaliveInterval = 30 * time.Second

// StreamUpdates returns a handler for GET /api/v1/updates.
// Each connection gets its own hub client; whatever the contest service
// broadcasts is relayed as an SSE "message" event. A client that stops
// reading is dropped by the hub rather than allowed to stall everyone else.
func StreamUpdates(hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// SSE headers
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx: don't buffer the stream

		client := websocket.NewClient()
		hub.Register(client)

		ctx := c.Context()

		// Fiber sits on fasthttp, so the streaming body is written through
		// SetBodyStreamWriter — w.Flush() is what actually pushes bytes out.
		ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
			defer hub.Unregister(client)

			ticker := time.NewTicker(keepaliveInterval)
			defer ticker.Stop()

			// Initial keepalive (comment event) confirms the stream is open.
			w.WriteString(":\n\n")
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case data, ok := <-client.Send:
					if !ok {
						// Hub closed the channel — we were dropped.
						return
					}
					fmt.Fprintf(w, "event: contest\ndata: %s\n\n", data)
					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}

				case <-ticker.C:
					w.WriteString(":\n\n")
					if err := w.Flush(); err != nil {
						return
					}

				case <-ctx.Done():
					// Client closed the connection
					return
				}
			}
		})

		return nil
	}
}
