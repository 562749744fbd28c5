package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// alertsWS streams the user's alerts over a websocket until the client
// disconnects.
func (s *Server) alertsWS(c *gin.Context) {
	if s.hub == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "alerts are not enabled"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	s.hub.Serve(realtime.NewClient(currentUser(c), conn))
}
