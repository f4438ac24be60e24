// Package sound holds client sound preferences: a master mute, a
// volume, and per-cue enablement. It stores state only; actually
// playing audio is the embedding application's concern, which asks
// ShouldPlay before doing so.
package sound

import "sync"

// Cue names a UI sound effect.
type Cue string

// Built-in cues.
const (
	CueNotification Cue = "notification"
	CueBatchSent    Cue = "batch_sent"
	CueBatchFailed  Cue = "batch_failed"
	CueClick        Cue = "click"
)

// Store holds sound preferences. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	muted    bool
	volume   float64
	disabled map[Cue]bool
}

// NewStore creates a Store with sound on at full volume.
func NewStore() *Store {
	return &Store{
		volume:   1.0,
		disabled: make(map[Cue]bool),
	}
}

// Muted reports the master mute state.
func (s *Store) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.muted
}

// SetMuted sets the master mute.
func (s *Store) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

// ToggleMuted flips the master mute and returns the new state.
func (s *Store) ToggleMuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	return s.muted
}

// Volume returns the current volume in [0, 1].
func (s *Store) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// SetVolume sets the volume, clamped to [0, 1].
func (s *Store) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.mu.Lock()
	s.volume = v
	s.mu.Unlock()
}

// Enable re-enables a cue.
func (s *Store) Enable(c Cue) {
	s.mu.Lock()
	delete(s.disabled, c)
	s.mu.Unlock()
}

// Disable silences a single cue without touching the master mute.
func (s *Store) Disable(c Cue) {
	s.mu.Lock()
	s.disabled[c] = true
	s.mu.Unlock()
}

// Enabled reports whether a cue is individually enabled, ignoring the
// master mute and volume.
func (s *Store) Enabled(c Cue) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.disabled[c]
}

// ShouldPlay reports whether a cue should be audible right now: not
// master-muted, volume above zero, and the cue not disabled.
func (s *Store) ShouldPlay(c Cue) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.muted && s.volume > 0 && !s.disabled[c]
}
