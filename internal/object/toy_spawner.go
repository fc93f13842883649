package object

import "time"

// ToySpawner decides when the next toy is due.
type ToySpawner struct {
	interval  time.Duration
	lastSpawn time.Time
}

// NewToySpawner creates a spawner whose first toy is due one interval after now.
func NewToySpawner(interval time.Duration, now time.Time) *ToySpawner {
	return &ToySpawner{
		interval:  interval,
		lastSpawn: now,
	}
}

// Due reports whether more than one interval has passed since the last spawn.
// When it has, the cadence restarts from now.
func (s *ToySpawner) Due(now time.Time) bool {
	if now.Sub(s.lastSpawn) <= s.interval {
		return false
	}
	s.lastSpawn = now
	return true
}

