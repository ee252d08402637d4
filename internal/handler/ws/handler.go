package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Nirjal444/MATHBOT/internal/model/chat"
	"github.com/Nirjal444/MATHBOT/internal/service/registry"
	"github.com/Nirjal444/MATHBOT/internal/service/tutor"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// Handler upgrades /ws requests and runs the per-connection question/answer
// loop: one reply frame per received frame, no batching or streaming.
type Handler struct {
	tutorSvc *tutor.Service
	registry *registry.Registry
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(tutorSvc *tutor.Service, reg *registry.Registry) *Handler {
	return &Handler{
		tutorSvc: tutorSvc,
		registry: reg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := h.registry.Register(conn)
	defer h.registry.Unregister(conn)

	log.Printf("[ws] connection opened id=%s remote=%s total=%d", connID, conn.RemoteAddr(), h.registry.Count())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[ws] read error id=%s: %v", connID, err)
				} else {
					log.Printf("[ws] connection closed id=%s", connID)
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))

			question := decodeQuestion(raw)
			reply := chat.Reply{
				ID:       question.ID,
				Response: h.tutorSvc.Answer(ctx, question.Text),
			}

			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("[ws] write failed id=%s: %v", connID, err)
			}
		}
	}
}

// decodeQuestion parses an inbound frame as {"id": ..., "text": ...}. Frames
// that do not fit that shape are treated as a bare prompt with no id.
func decodeQuestion(raw []byte) chat.Question {
	var q chat.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return chat.Question{Text: string(raw)}
	}
	return q
}

func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
