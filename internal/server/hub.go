package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans chat traffic out to connected websocket clients and doubles as
// the engine's outbound messaging collaborator. A chat message goes to
// every client watching that chat; a private message only reaches the
// user's own connection.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	chats    map[int64]map[*wsClient]struct{}
	users    map[int64]*wsClient
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	chatID int64
	userID int64
	name   string
}

type wsEvent struct {
	Type     string   `json:"type"`
	ChatID   int64    `json:"chat_id,omitempty"`
	Text     string   `json:"text,omitempty"`
	BallotID string   `json:"ballot_id,omitempty"`
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		chats: make(map[int64]map[*wsClient]struct{}),
		users: make(map[int64]*wsClient),
	}
}

func (h *Hub) Broadcast(chatID int64, text string) error {
	return h.fanOut(chatID, wsEvent{Type: "message", ChatID: chatID, Text: text})
}

func (h *Hub) SendPrivate(userID int64, text string) error {
	data, err := json.Marshal(wsEvent{Type: "private", Text: text})
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.users[userID]
	if !ok {
		return errors.New("user not connected")
	}
	select {
	case client.send <- data:
		return nil
	default:
		h.dropLocked(client)
		return errors.New("send buffer full")
	}
}

func (h *Hub) OpenPoll(chatID int64, ballotID, question string, options []string) error {
	return h.fanOut(chatID, wsEvent{
		Type:     "ballot",
		ChatID:   chatID,
		BallotID: ballotID,
		Question: question,
		Options:  options,
	})
}

func (h *Hub) PlayerName(chatID, userID int64) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.users[userID]; ok && client.name != "" {
		return client.name, nil
	}
	return "", errors.New("user not connected")
}

func (h *Hub) fanOut(chatID int64, event wsEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.chats[chatID] {
		select {
		case client.send <- data:
		default:
			h.dropLocked(client)
		}
	}
	return nil
}

func (h *Hub) register(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.chats[client.chatID]; !ok {
		h.chats[client.chatID] = make(map[*wsClient]struct{})
	}
	h.chats[client.chatID][client] = struct{}{}
	if client.userID != 0 {
		h.users[client.userID] = client
	}
}

func (h *Hub) unregister(client *wsClient) {
	h.mu.Lock()
	h.dropLocked(client)
	h.mu.Unlock()
}

func (h *Hub) dropLocked(client *wsClient) {
	if clients, ok := h.chats[client.chatID]; ok {
		if _, present := clients[client]; present {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(h.chats, client.chatID)
		}
	}
	if current, ok := h.users[client.userID]; ok && current == client {
		delete(h.users, client.userID)
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	chatID, err := strconv.ParseInt(r.PathValue("chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid chat id")
		return
	}
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed chat_id=%d error=%v", chatID, err)
		return
	}
	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, 32),
		chatID: chatID,
		userID: userID,
		name:   r.URL.Query().Get("name"),
	}
	s.hub.register(client)
	go client.writePump()
	client.readPump(s.hub)
}

func (c *wsClient) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
}

func (c *wsClient) readPump(h *Hub) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
