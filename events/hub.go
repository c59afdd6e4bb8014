package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-tab/utils"
)

// Topics emitted after each successful session/order mutation. The payload is
// always the freshly recomputed session view.
const (
	TopicNewSession       = "new_session"
	TopicNewOrder         = "new_order"
	TopicNewParticipant   = "new_participant"
	TopicPaymentRequested = "payment_requested"
	TopicSessionFinished  = "session_finished"
	TopicWaiterCalled     = "waiter_called"
	TopicItemCanceled     = "item_canceled"
	TopicItemServed       = "item_served"
)

type Message struct {
	Topic          string      `json:"topic"`
	TableSessionID uint        `json:"table_session_id"`
	Content        interface{} `json:"content"`
}

// Hub fans session events out to every connected websocket client (waiter
// panels, customer apps, manager dashboards).
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its authenticated role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Publish broadcasts a session state change to all clients.
func Publish(topic string, tableSessionID uint, content interface{}) {
	broadcast(Message{
		Topic:          topic,
		TableSessionID: tableSessionID,
		Content:        content,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("events: marshal message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("events: write to client: %v", err)
		}
	}
}
