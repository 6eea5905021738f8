package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"github.com/cloudstok/flash-roulette-backend/internal/lib/logger/sl"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

// Engine is the slice of the bet engine the transport needs.
type Engine interface {
	PlaceBet(ctx context.Context, connID string, raw []model.RawBet) error
	TeardownSession(connID string)
}

// envelope is one inbound client frame. The place-bet event is "bt",
// carrying the raw leg array.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outMessage struct {
	EventName string      `json:"eventName"`
	Data      interface{} `json:"data"`
}

// connection serializes writes; gorilla connections allow one writer at a
// time and results can arrive from settlement workers.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *connection) write(msg outMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteJSON(msg)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub tracks live player connections and routes bet events to the engine
// and engine events back to players.
type Hub struct {
	log       *slog.Logger
	validator *validator.Validate
	engine    Engine

	mu    sync.RWMutex
	conns map[string]*connection
}

// betRequest is the shape check applied before the engine sees anything;
// the engine's own validator stays authoritative for the domain rules.
type betRequest struct {
	Bets []model.RawBet `validate:"required,min=1,max=6,dive"`
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:       log,
		validator: validator.New(),
		conns:     make(map[string]*connection),
	}
}

// Bind attaches the engine after construction; the engine in turn emits
// through the hub.
func (hub *Hub) Bind(engine Engine) {
	hub.engine = engine
}

func (hub *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Error("failed to upgrade connection", sl.Err(err))

		return
	}

	// The platform seeds the session cache keyed by this id before the
	// player connects; without it a fresh id is assigned and every bet is
	// rejected as an unknown session.
	connID := r.URL.Query().Get("id")
	if connID == "" {
		connID = uuid.New().String()
	}

	conn := &connection{ws: ws}

	hub.mu.Lock()
	hub.conns[connID] = conn
	hub.mu.Unlock()

	hub.log.Info("player connected", sl.String("conn_id", connID))

	defer func() {
		hub.mu.Lock()
		delete(hub.conns, connID)
		hub.mu.Unlock()

		hub.engine.TeardownSession(connID)

		if err = ws.Close(); err != nil {
			hub.log.Error("failed to close connection", sl.Err(err))
		}

		hub.log.Info("player disconnected", sl.String("conn_id", connID))
	}()

	for {
		_, p, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err = json.Unmarshal(p, &env); err != nil {
			hub.log.Error("failed to unmarshal message", sl.Err(err), sl.String("conn_id", connID))

			continue
		}

		switch env.Event {
		case "bt":
			var raw []model.RawBet
			if err = json.Unmarshal(env.Data, &raw); err != nil {
				hub.log.Error("failed to unmarshal bet data", sl.Err(err), sl.String("conn_id", connID))

				hub.Emit(connID, "betError", outError("invalid bet payload"))

				continue
			}

			if err = hub.validator.Struct(betRequest{Bets: raw}); err != nil {
				hub.log.Info("bet request failed shape validation", sl.Err(err), sl.String("conn_id", connID))

				hub.Emit(connID, "betError", outError("invalid bet payload"))

				continue
			}

			// The engine emits every player-facing response itself; the
			// error return only matters for logging here.
			_ = hub.engine.PlaceBet(r.Context(), connID, raw)
		default:
			hub.log.Info("ignoring unknown event",
				sl.String("event", env.Event),
				sl.String("conn_id", connID))
		}
	}
}

// Emit implements the engine's Emitter boundary.
func (hub *Hub) Emit(connID, event string, data interface{}) {
	hub.mu.RLock()
	conn := hub.conns[connID]
	hub.mu.RUnlock()

	if conn == nil {
		hub.log.Info("dropping event for closed connection",
			sl.String("conn_id", connID),
			sl.String("event", event))

		return
	}

	if err := conn.write(outMessage{EventName: event, Data: data}); err != nil {
		hub.log.Error("failed to write event",
			sl.Err(err),
			sl.String("conn_id", connID),
			sl.String("event", event))
	}
}

func outError(message string) map[string]interface{} {
	return map[string]interface{}{
		"message": message,
		"status":  false,
	}
}
