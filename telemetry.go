package balls

// hubStats counts what the loop and broadcaster have done since boot. All
// fields are guarded by the hub mutex.
type hubStats struct {
	ticks         uint64
	broadcasts    uint64
	spawned       uint64
	cageHits      uint64
	ballHits      uint64
	droppedWrites uint64
}

// ViewerDiagnostics exposes per-session heartbeat data.
type ViewerDiagnostics struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rtt"`
	Connected     bool   `json:"connected"`
}

// Diagnostics is the payload served by the diagnostics endpoint.
type Diagnostics struct {
	Tick            uint64              `json:"tick"`
	TickRate        int                 `json:"tickRate"`
	Seed            string              `json:"seed"`
	Balls           int                 `json:"balls"`
	Broadcasts      uint64              `json:"broadcasts"`
	Spawned         uint64              `json:"spawned"`
	CageHits        uint64              `json:"cageHits"`
	BallHits        uint64              `json:"ballHits"`
	DroppedWrites   uint64              `json:"droppedWrites"`
	HeartbeatMillis int64               `json:"heartbeatMillis"`
	Viewers         []ViewerDiagnostics `json:"viewers"`
}

// DiagnosticsSnapshot copies the hub counters and viewer sessions for the
// diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() Diagnostics {
	h.mu.Lock()
	defer h.mu.Unlock()

	cfg := h.world.Config()
	diag := Diagnostics{
		Tick:            h.tick,
		TickRate:        cfg.TickRate,
		Seed:            cfg.Seed,
		Balls:           h.world.Len(),
		Broadcasts:      h.stats.broadcasts,
		Spawned:         h.stats.spawned,
		CageHits:        h.stats.cageHits,
		BallHits:        h.stats.ballHits,
		DroppedWrites:   h.stats.droppedWrites,
		HeartbeatMillis: heartbeatInterval.Milliseconds(),
		Viewers:         make([]ViewerDiagnostics, 0, len(h.viewers)),
	}
	for _, viewer := range h.viewers {
		_, connected := h.subscribers[viewer.id]
		diag.Viewers = append(diag.Viewers, ViewerDiagnostics{
			ID:            viewer.id,
			LastHeartbeat: viewer.lastHeartbeat.UnixMilli(),
			RTTMillis:     viewer.lastRTT.Milliseconds(),
			Connected:     connected,
		})
	}
	return diag
}
