package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"signup-wizard/internal/wizard"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Session cookie already scopes what a socket can see
	},
}

// Client is one websocket bound to a wizard session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

type envelope struct {
	sessionID string
	payload   []byte
}

// Hub fans session snapshots out to the sockets subscribed to that session.
type Hub struct {
	sessions   map[string]map[*Client]bool
	publish    chan envelope
	register   chan *Client
	unregister chan *Client
	evict      chan string
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		publish:    make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		evict:      make(chan string, 64),
		done:       make(chan struct{}),
	}
}

// Run owns the subscription map until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.sessions {
				for client := range clients {
					close(client.send)
				}
			}
			h.sessions = map[string]map[*Client]bool{}
			return
		case client := <-h.register:
			clients := h.sessions[client.sessionID]
			if clients == nil {
				clients = make(map[*Client]bool)
				h.sessions[client.sessionID] = clients
			}
			clients[client] = true
			log.Printf("WebSocket client registered for session %s", client.sessionID)
		case client := <-h.unregister:
			h.remove(client)
		case sessionID := <-h.evict:
			for client := range h.sessions[sessionID] {
				h.remove(client)
			}
		case env := <-h.publish:
			for client := range h.sessions[env.sessionID] {
				select {
				case client.send <- env.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}
	log.Printf("WebSocket client unregistered for session %s", client.sessionID)
}

type WSEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NotifySession queues a session_update event. It never blocks the caller;
// events are dropped once the hub has stopped or its queue is full.
func (h *Hub) NotifySession(sessionID string, snapshot wizard.Snapshot) {
	payload, err := json.Marshal(WSEvent{Type: "session_update", Data: snapshot})
	if err != nil {
		log.Printf("Error marshaling WS event: %v", err)
		return
	}
	select {
	case h.publish <- envelope{sessionID: sessionID, payload: payload}:
	case <-h.done:
	default:
		log.Printf("WebSocket queue full, dropping update for session %s", sessionID)
	}
}

// CloseSession disconnects every socket subscribed to sessionID.
func (h *Hub) CloseSession(sessionID string) {
	select {
	case h.evict <- sessionID:
	case <-h.done:
	}
}

func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &Client{hub: h, conn: conn, sessionID: sessionID, send: make(chan []byte, 16)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
