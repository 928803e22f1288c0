// Copyright © 2021-2025 The Gomon Project.

package serve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zosmac/gocore"
	"golang.org/x/net/websocket"

	"github.com/zosmac/godmesg/follow"
)

// handler defines the server's endpoints.
func handler(stats func() follow.Stats, hub *Hub) http.Handler {
	mux := http.NewServeMux()

	// the default registry adds Go runtime metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(&prometheusCollector{stats: stats, hub: hub})
	mux.Handle(
		"/metrics",
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	mux.Handle(
		"/ws",
		websocket.Server{
			Config: websocket.Config{
				Location: &url.URL{
					Scheme: "ws",
					Host:   "localhost",
					Path:   "/ws",
				},
				Version: websocket.ProtocolVersionHybi,
			},
			Handler: hub.handler,
			Handshake: func(c *websocket.Config, r *http.Request) error {
				return nil
			},
		},
	)

	return mux
}

// Serve starts the server on localhost:port, returning the Hub to tap records into.
// The server shuts down when ctx is done.
func Serve(ctx context.Context, port int, stats func() follow.Stats) (*Hub, error) {
	ln, err := net.Listen("tcp", "localhost:"+strconv.Itoa(port))
	if err != nil {
		return nil, gocore.Error("listen", err)
	}

	hub := NewHub(ctx)
	server := &http.Server{
		Handler: handler(stats, hub),
	}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	go func() {
		gocore.Error("godmesg server", nil, map[string]string{
			"listen": "http://" + ln.Addr().String(),
		}).Info()
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			gocore.Error("godmesg server", err).Err()
		}
	}()

	return hub, nil
}
