package sim

import "time"

const (
	// DefaultTickRate matches the fixed-update cadence the simulation was
	// tuned against.
	DefaultTickRate = 64
	// DefaultCatchupMaxTicks bounds how much simulated time one late tick
	// may cover.
	DefaultCatchupMaxTicks = 4
)

// Config tunes the fixed-timestep runner.
type Config struct {
	TickRate        int
	CatchupMaxTicks int
	Clock           Clock
}

// TickContext carries the timing handed to one step.
type TickContext struct {
	Tick  uint64
	Now   time.Time
	Delta float64
}

// TickResult reports how one step performed against its budget.
type TickResult struct {
	TickContext
	Duration time.Duration
	Budget   time.Duration
	Clamped  bool
}

// Hooks let the owner observe and drive the loop. Tick runs the simulation
// step; After fires once the step finished, with timing attached.
type Hooks struct {
	NextTick func() uint64
	Tick     func(TickContext)
	After    func(TickResult)
}

// Loop drives a simulation at a fixed tick rate with catch-up clamping.
type Loop struct {
	config Config
	hooks  Hooks
	clock  Clock
	tick   uint64
}

// NewLoop applies defaults and returns a ready loop.
func NewLoop(cfg Config, hooks Hooks) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.CatchupMaxTicks < 1 {
		cfg.CatchupMaxTicks = DefaultCatchupMaxTicks
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Loop{config: cfg, hooks: hooks, clock: clock}
}

// Budget returns the wall-time allowance of a single tick.
func (l *Loop) Budget() time.Duration {
	return time.Second / time.Duration(l.config.TickRate)
}

// Advance executes exactly one step with explicit timing. Run uses it every
// tick; tests call it directly.
func (l *Loop) Advance(ctx TickContext) TickResult {
	start := l.clock.Now()
	if l.hooks.Tick != nil {
		l.hooks.Tick(ctx)
	}
	return TickResult{
		TickContext: ctx,
		Duration:    l.clock.Now().Sub(start),
		Budget:      l.Budget(),
	}
}

// Run drives the loop until the stop channel closes.
func (l *Loop) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(l.Budget())
	defer ticker.Stop()

	last := l.clock.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := l.clock.Now()
			dt, clamped := l.clampDelta(now.Sub(last).Seconds())
			last = now

			result := l.Advance(TickContext{Tick: l.nextTick(), Now: now, Delta: dt})
			result.Clamped = clamped
			if l.hooks.After != nil {
				l.hooks.After(result)
			}
		}
	}
}

// clampDelta keeps the simulated delta positive and bounded so a stalled
// process cannot replay a huge jump in one step.
func (l *Loop) clampDelta(dt float64) (float64, bool) {
	budget := 1.0 / float64(l.config.TickRate)
	if dt <= 0 {
		return budget, false
	}
	max := budget * float64(l.config.CatchupMaxTicks)
	if dt > max {
		return max, true
	}
	return dt, false
}

func (l *Loop) nextTick() uint64 {
	if l.hooks.NextTick != nil {
		return l.hooks.NextTick()
	}
	l.tick++
	return l.tick
}
