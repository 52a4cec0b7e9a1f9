package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	SessionID string `json:"sessionId"`
	Key       string `json:"key"`
}

type hintPayload struct {
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game
// use cases. One connection drives one player; all writes happen on the read
// loop, so no write pump is needed.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// session bound to this connection once started or resumed
	sessionID := ""

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		var (
			view  domain.GameView
			opErr error
		)
		switch inbound.Type {
		case "start":
			view, opErr = h.service.StartGame(r.Context(), userID)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, "invalid answer payload")
				continue
			}
			view, opErr = h.service.Answer(r.Context(), pick(payload.SessionID, sessionID), payload.Key)
		case "hint":
			var payload hintPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.writeError(conn, "invalid hint payload")
				continue
			}
			kind, err := domain.ParseHintKind(payload.Kind)
			if err != nil {
				h.writeError(conn, err.Error())
				continue
			}
			view, opErr = h.service.UseHint(r.Context(), pick(payload.SessionID, sessionID), kind)
		case "cashout":
			var payload sessionPayload
			_ = json.Unmarshal(inbound.Payload, &payload)
			view, opErr = h.service.CashOut(r.Context(), pick(payload.SessionID, sessionID))
		case "state":
			var payload sessionPayload
			_ = json.Unmarshal(inbound.Payload, &payload)
			view, opErr = h.service.State(r.Context(), pick(payload.SessionID, sessionID))
		default:
			h.writeError(conn, "unsupported message type")
			continue
		}

		if opErr != nil {
			h.writeError(conn, opErr.Error())
			if !hasView(opErr) {
				continue
			}
		}
		if view.SessionID != "" {
			sessionID = view.SessionID
		}
		if err := conn.WriteJSON(outboundMessage[domain.GameView]{Type: "game", Payload: view}); err != nil {
			log.Printf("ws write error: %v", err)
			return
		}
	}
}

// hasView reports whether the error still came with a meaningful state change
// worth pushing to the client (a session expiring terminates it).
func hasView(err error) bool {
	return errors.Is(err, domain.ErrTimeExpired)
}

func (h *WSHandler) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func pick(explicit, bound string) string {
	if explicit != "" {
		return explicit
	}
	return bound
}
