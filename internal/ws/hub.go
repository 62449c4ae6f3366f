// Package ws implements the websocket feed: a single hub fanning the
// telemetry snapshot out to every connected client.
package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set. Every broadcast goes to every client; a client
// whose send buffer is full is dropped rather than holding up the tick.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("websocket client connected", "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("websocket client disconnected", "clients", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("dropping slow websocket client")
				}
			}

		case <-h.stop:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

func (h *Hub) Broadcast(message []byte) {
	h.broadcast <- message
}

// ServeWs upgrades the connection, queues the initial payload, and registers
// the client with the hub.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request, initial []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256)}
	if initial != nil {
		client.send <- initial
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}
