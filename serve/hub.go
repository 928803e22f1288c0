// Copyright © 2021-2025 The Gomon Project.

package serve

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zosmac/gocore"
	"golang.org/x/net/websocket"

	"github.com/zosmac/godmesg/kmsg"
	"github.com/zosmac/godmesg/render"
)

const (
	// backlog is the number of records queued for each websocket client.
	backlog = 256
)

type (
	// Hub fans records out to websocket clients. A client that falls behind loses records
	// rather than stalling the reader.
	Hub struct {
		ctx     context.Context
		mu      sync.Mutex
		clients map[chan []byte]struct{}
		dropped atomic.Uint64
	}
)

// NewHub creates a Hub whose clients are disconnected when ctx is done.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		ctx:     ctx,
		clients: map[chan []byte]struct{}{},
	}
}

// Publish queues r, as a JSON object, to every client.
func (h *Hub) Publish(r *kmsg.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}

	obj, err := render.Marshal(r)
	if err != nil {
		gocore.Error("marshal", err).Warn()
		return
	}
	for c := range h.clients {
		select {
		case c <- obj:
		default:
			h.dropped.Add(1)
		}
	}
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped reports the number of records not delivered to slow clients.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) subscribe() chan []byte {
	c := make(chan []byte, backlog)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) unsubscribe(c chan []byte) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// handler streams records to a websocket client until it goes away or the hub's context is done.
func (h *Hub) handler(ws *websocket.Conn) {
	defer ws.Close()
	c := h.subscribe()
	defer h.unsubscribe(c)

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var msg string
		for {
			if err := websocket.Message.Receive(ws, &msg); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-gone:
			return
		case obj := <-c:
			if err := websocket.Message.Send(ws, string(obj)); err != nil {
				gocore.Error("websocket Send", err).Warn()
				return
			}
		}
	}
}
