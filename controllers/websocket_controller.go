package controllers

import (
	"TeamChat/middlewares"
	"TeamChat/websocket"
	"net/http"

	"github.com/gin-gonic/gin"
)

var webSocketHub *websocket.Hub

func SetWebSocketHub(hub *websocket.Hub) {
	webSocketHub = hub
}

// ServeWs subscribes the caller to the change feed of one chat, or of every
// chat when chat_id is omitted.
func ServeWs(c *gin.Context) {
	userID := middlewares.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	websocket.ServeWs(webSocketHub, c.Writer, c.Request, userID, c.Query("chat_id"))
}
