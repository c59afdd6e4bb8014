package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-tab/events"
	"github.com/yeremiapane/restaurant-tab/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventsController struct{}

func NewEventsController() *EventsController {
	return &EventsController{}
}

// Stream upgrades the connection and keeps it registered on the hub until the
// client hangs up. Clients only listen; inbound frames are drained and
// dropped.
func (ec *EventsController) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("events: upgrade failed: %v", err)
		return
	}

	role := c.GetString("role")
	events.RegisterClient(conn, role)
	utils.InfoLogger.Printf("Events client connected (role=%s)", role)

	go func() {
		defer events.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
