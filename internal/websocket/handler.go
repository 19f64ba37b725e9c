package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades the request and runs it as a hub client. The
// optional ?child= query parameter scopes the subscription.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // household LAN, any origin
		})
		if err != nil {
			hub.logger.Warn("websocket accept", "error", err)
			return
		}

		child := r.URL.Query().Get("child")
		hub.logger.Debug("websocket connected", "child", child, "remote", r.RemoteAddr)

		NewClient(hub, conn, child).Run(r.Context())
	}
}
