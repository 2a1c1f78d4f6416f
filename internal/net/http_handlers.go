// Package net exposes the hub over HTTP and WebSocket.
package net

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	balls "github.com/zegevlier/bevy-balls"
)

type HTTPHandlerConfig struct {
	ClientDir string
	Logger    *zap.Logger
}

// clientMessage is the union of every message a viewer may send over the
// socket.
type clientMessage struct {
	Ver    int    `json:"ver,omitempty"`
	Type   string `json:"type"`
	SentAt int64  `json:"sentAt"`
}

type heartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

type spawnedMessage struct {
	Ver  int        `json:"ver"`
	Type string     `json:"type"`
	Ball balls.Ball `json:"ball"`
}

// resetRequest patches the running configuration field by field; absent
// fields keep their current values.
type resetRequest struct {
	BallRadius    *float64 `json:"ballRadius"`
	StartingSpeed *float64 `json:"startingSpeed"`
	Gravity       *float64 `json:"gravity"`
	CageRadius    *float64 `json:"cageRadius"`
	WallThickness *float64 `json:"wallThickness"`
	SpawnChance   *float64 `json:"spawnChance"`
	Seed          *string  `json:"seed"`
	Spawn         *bool    `json:"spawn"`
}

func NewHTTPHandler(hub *balls.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status     string            `json:"status"`
			ServerTime int64             `json:"serverTime"`
			Sim        balls.Diagnostics `json:"sim"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			Sim:        hub.DiagnosticsSnapshot(),
		}
		writeJSON(w, payload, logger)
	})

	mux.HandleFunc("/join", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, hub.Join(), logger)
	})

	mux.HandleFunc("/reset", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		cfg := hub.CurrentConfig()
		spawn := false

		if r.Body != nil {
			defer r.Body.Close()
			var req resetRequest
			decoder := json.NewDecoder(r.Body)
			if err := decoder.Decode(&req); err != nil && err != io.EOF {
				httpError(w, "invalid payload", nethttp.StatusBadRequest)
				return
			}
			if req.BallRadius != nil {
				cfg.BallRadius = *req.BallRadius
			}
			if req.StartingSpeed != nil {
				cfg.StartingSpeed = *req.StartingSpeed
			}
			if req.Gravity != nil {
				cfg.Gravity = *req.Gravity
			}
			if req.CageRadius != nil {
				cfg.CageRadius = *req.CageRadius
			}
			if req.WallThickness != nil {
				cfg.WallThickness = *req.WallThickness
			}
			if req.SpawnChance != nil {
				cfg.SpawnChance = *req.SpawnChance
			}
			if req.Seed != nil {
				cfg.Seed = *req.Seed
			}
			if req.Spawn != nil {
				spawn = *req.Spawn
			}
		}

		effective := hub.ResetWorld(cfg.Normalized())
		if spawn {
			hub.SpawnBall()
		}

		response := struct {
			Status string       `json:"status"`
			Config balls.Config `json:"config"`
		}{
			Status: "ok",
			Config: effective,
		}
		writeJSON(w, response, logger)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	mux.HandleFunc("/ws", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		viewerID := r.URL.Query().Get("id")
		if viewerID == "" {
			httpError(w, "missing id", nethttp.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade failed",
				zap.String("viewer", viewerID), zap.Error(err))
			return
		}

		sub, ok := hub.Subscribe(viewerID, conn)
		if !ok {
			message := websocket.FormatCloseMessage(
				websocket.ClosePolicyViolation, "unknown viewer")
			conn.WriteMessage(websocket.CloseMessage, message)
			conn.Close()
			return
		}

		initial, err := json.Marshal(hub.StateSnapshot())
		if err != nil {
			logger.Error("marshal initial state",
				zap.String("viewer", viewerID), zap.Error(err))
			hub.Disconnect(viewerID)
			return
		}
		if err := sub.WriteMessage(websocket.TextMessage, initial); err != nil {
			hub.Disconnect(viewerID)
			return
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				hub.Disconnect(viewerID)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				logger.Warn("discarding malformed message",
					zap.String("viewer", viewerID), zap.Error(err))
				continue
			}

			switch msg.Type {
			case "heartbeat":
				now := time.Now()
				rtt, ok := hub.UpdateHeartbeat(viewerID, now, msg.SentAt)
				if !ok {
					continue
				}
				ack := heartbeatMessage{
					Ver:        balls.ProtocolVersion,
					Type:       "heartbeat",
					ServerTime: now.UnixMilli(),
					ClientTime: msg.SentAt,
					RTTMillis:  rtt.Milliseconds(),
				}
				data, err := json.Marshal(ack)
				if err != nil {
					logger.Error("marshal heartbeat ack",
						zap.String("viewer", viewerID), zap.Error(err))
					continue
				}
				if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
					hub.Disconnect(viewerID)
					return
				}
			case "spawn":
				ball := hub.SpawnBall()
				ack := spawnedMessage{
					Ver:  balls.ProtocolVersion,
					Type: "spawned",
					Ball: ball,
				}
				data, err := json.Marshal(ack)
				if err != nil {
					logger.Error("marshal spawn ack",
						zap.String("viewer", viewerID), zap.Error(err))
					continue
				}
				if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
					hub.Disconnect(viewerID)
					return
				}
			case "reset":
				hub.ResetWorld(hub.CurrentConfig())
				hub.SpawnBall()
			default:
				logger.Warn("unknown message type",
					zap.String("viewer", viewerID), zap.String("type", msg.Type))
			}
		}
	})

	if cfg.ClientDir != "" {
		fs := nethttp.FileServer(nethttp.Dir(cfg.ClientDir))
		mux.Handle("/", fs)
	}

	return mux
}

func writeJSON(w nethttp.ResponseWriter, payload any, logger *zap.Logger) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("encode response", zap.Error(err))
		httpError(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}
