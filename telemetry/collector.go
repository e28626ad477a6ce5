package telemetry

// Collector accumulates per-frame events into window aggregates. The engine
// calls the Record* methods as events happen and Flush at window boundaries.
type Collector struct {
	windowStart uint64
	spawned     int
	expired     int
	horizon     int
	hemisphere  int
	gestures    int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordSpawns adds spawn events to the current window.
func (c *Collector) RecordSpawns(n int) { c.spawned += n }

// RecordExpired adds natural-death events to the current window.
func (c *Collector) RecordExpired(n int) { c.expired += n }

// RecordKills adds accretion kill events to the current window.
func (c *Collector) RecordKills(horizon, hemisphere int) {
	c.horizon += horizon
	c.hemisphere += hemisphere
}

// RecordGesture counts a triggered gesture.
func (c *Collector) RecordGesture() { c.gestures++ }

// Flush returns the window's aggregates merged into the caller-provided
// snapshot and resets the counters for the next window.
func (c *Collector) Flush(frame uint64, simTime float64, snapshot WindowStats) WindowStats {
	snapshot.WindowStartFrame = c.windowStart
	snapshot.WindowEndFrame = frame
	snapshot.SimTimeSec = simTime
	snapshot.Spawned = c.spawned
	snapshot.Expired = c.expired
	snapshot.HorizonKills = c.horizon
	snapshot.HemisphereKills = c.hemisphere
	snapshot.Gestures = c.gestures

	c.windowStart = frame
	c.spawned = 0
	c.expired = 0
	c.horizon = 0
	c.hemisphere = 0
	c.gestures = 0
	return snapshot
}
