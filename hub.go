package balls

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zegevlier/bevy-balls/internal/sim"
)

// viewerState tracks one spectator session between join and disconnect.
type viewerState struct {
	id            string
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

// Subscriber serializes writes to one WebSocket connection.
type Subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteMessage writes a single frame under the write deadline.
func (s *Subscriber) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// Close closes the underlying connection.
func (s *Subscriber) Close() error {
	return s.conn.Close()
}

// Hub owns the world, the viewer sessions, and their subscriptions.
type Hub struct {
	mu          sync.Mutex
	world       *World
	tick        uint64
	viewers     map[string]*viewerState
	subscribers map[string]*Subscriber
	stats       hubStats
	logger      *zap.Logger
}

// NewHub builds a hub around a fresh world. A nil logger is replaced with a
// no-op one.
func NewHub(cfg Config, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		world:       NewWorld(cfg),
		viewers:     make(map[string]*viewerState),
		subscribers: make(map[string]*Subscriber),
		logger:      logger,
	}
}

// Join registers a new viewer session and returns the current snapshot.
func (h *Hub) Join() JoinResponse {
	viewerID := uuid.NewString()
	now := time.Now()

	h.mu.Lock()
	h.viewers[viewerID] = &viewerState{id: viewerID, lastHeartbeat: now}
	response := JoinResponse{
		Ver:    ProtocolVersion,
		ID:     viewerID,
		Config: h.world.Config(),
		Tick:   h.tick,
		Balls:  h.world.Snapshot(),
	}
	h.mu.Unlock()

	h.logger.Info("viewer joined", zap.String("viewer", viewerID))
	return response
}

// Subscribe associates a WebSocket connection with an existing viewer. A
// previous connection for the same viewer is closed and replaced.
func (h *Hub) Subscribe(viewerID string, conn *websocket.Conn) (*Subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	viewer, ok := h.viewers[viewerID]
	if !ok {
		return nil, false
	}
	viewer.lastHeartbeat = time.Now()

	if existing, ok := h.subscribers[viewerID]; ok {
		existing.Close()
	}

	sub := &Subscriber{conn: conn}
	h.subscribers[viewerID] = sub
	return sub, true
}

// Disconnect removes a viewer session and closes its connection.
func (h *Hub) Disconnect(viewerID string) {
	h.mu.Lock()
	sub, subOK := h.subscribers[viewerID]
	if subOK {
		delete(h.subscribers, viewerID)
	}
	_, viewerOK := h.viewers[viewerID]
	if viewerOK {
		delete(h.viewers, viewerID)
	}
	h.mu.Unlock()

	if subOK {
		sub.Close()
	}
	if viewerOK {
		h.logger.Info("viewer disconnected", zap.String("viewer", viewerID))
	}
}

// UpdateHeartbeat records the most recent heartbeat time and RTT for a
// viewer.
func (h *Hub) UpdateHeartbeat(viewerID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	viewer, ok := h.viewers[viewerID]
	if !ok {
		return 0, false
	}

	viewer.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			viewer.lastRTT = rtt
		}
	}

	return viewer.lastRTT, true
}

// CurrentConfig returns the effective world configuration.
func (h *Hub) CurrentConfig() Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.world.Config()
}

// ResetWorld replaces the world with a fresh one built from cfg and returns
// the effective configuration. The tick cadence is fixed for the process
// lifetime, so the running tick rate is carried over.
func (h *Hub) ResetWorld(cfg Config) Config {
	h.mu.Lock()
	cfg.TickRate = h.world.Config().TickRate
	h.world = NewWorld(cfg)
	effective := h.world.Config()
	h.mu.Unlock()

	h.logger.Info("world reset", zap.String("seed", effective.Seed))
	return effective
}

// SpawnBall inserts one ball immediately and returns its snapshot.
func (h *Hub) SpawnBall() Ball {
	h.mu.Lock()
	ball := *h.world.Spawn()
	h.stats.spawned++
	h.mu.Unlock()

	h.logger.Info("ball spawned", zap.String("ball", ball.ID))
	return ball
}

// StateSnapshot builds a state message for the current world without any
// tick events attached.
func (h *Hub) StateSnapshot() StateMessage {
	h.mu.Lock()
	msg := StateMessage{
		Ver:        ProtocolVersion,
		Type:       "state",
		Tick:       h.tick,
		ServerTime: time.Now().UnixMilli(),
		Balls:      h.world.Snapshot(),
	}
	h.mu.Unlock()
	return msg
}

// advance runs one simulation step and returns the broadcast payload plus
// any subscribers that timed out.
func (h *Hub) advance(now time.Time, dt float64) (StateMessage, []*Subscriber) {
	h.mu.Lock()

	toClose := make([]*Subscriber, 0)
	for id, viewer := range h.viewers {
		if now.Sub(viewer.lastHeartbeat) > disconnectAfter {
			if sub, ok := h.subscribers[id]; ok {
				toClose = append(toClose, sub)
				delete(h.subscribers, id)
			}
			delete(h.viewers, id)
			h.logger.Info("viewer timed out", zap.String("viewer", id))
		}
	}

	events := h.world.Step(dt)
	h.tick++
	h.stats.ticks++
	h.stats.cageHits += uint64(len(events.CageHits))
	h.stats.ballHits += uint64(len(events.BallHits))
	if events.Spawned != nil {
		h.stats.spawned++
	}

	msg := StateMessage{
		Ver:        ProtocolVersion,
		Type:       "state",
		Tick:       h.tick,
		ServerTime: now.UnixMilli(),
		Balls:      h.world.Snapshot(),
		Events:     TickEvents{Cage: events.CageHits, Ball: events.BallHits},
		Cues:       events.Cues,
	}
	if events.Spawned != nil {
		msg.Spawned = events.Spawned.ID
	}
	h.mu.Unlock()

	return msg, toClose
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	cfg := h.CurrentConfig()
	loop := sim.NewLoop(sim.Config{
		TickRate:        cfg.TickRate,
		CatchupMaxTicks: catchupMaxTicks,
	}, sim.Hooks{
		Tick: func(ctx sim.TickContext) {
			msg, toClose := h.advance(ctx.Now, ctx.Delta)
			for _, sub := range toClose {
				sub.Close()
			}
			h.broadcastState(msg)
		},
		After: func(result sim.TickResult) {
			if result.Duration > result.Budget {
				h.logger.Warn("tick over budget",
					zap.Uint64("tick", result.Tick),
					zap.Duration("duration", result.Duration),
					zap.Duration("budget", result.Budget))
			}
		},
	})
	loop.Run(stop)
}

// broadcastState sends one state message to every subscriber. Failed writes
// disconnect the subscriber.
func (h *Hub) broadcastState(msg StateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal state", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.stats.broadcasts++
	subs := make(map[string]*Subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("dropping subscriber",
				zap.String("viewer", id), zap.Error(err))
			h.mu.Lock()
			h.stats.droppedWrites++
			h.mu.Unlock()
			h.Disconnect(id)
		}
	}
}
