package tracker

import (
	"fmt"
	"strings"
)

// ScaleMode selects how asteroid sizes are drawn.
type ScaleMode int

const (
	Exaggerated ScaleMode = iota
	Realistic
)

func (m ScaleMode) String() string {
	if m == Realistic {
		return "Realistic"
	}
	return "Exaggerated"
}

// ParseScaleMode accepts "exaggerated" or "realistic" in any case. The empty
// string is Exaggerated.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exaggerated":
		return Exaggerated, nil
	case "realistic":
		return Realistic, nil
	default:
		return Exaggerated, fmt.Errorf("unknown scale mode %q", s)
	}
}

// Mode returns the current scale mode.
func (s *Session) Mode() ScaleMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ToggleScale flips between exaggerated and realistic asteroid sizes.
func (s *Session) ToggleScale() ScaleMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Exaggerated {
		s.mode = Realistic
	} else {
		s.mode = Exaggerated
	}
	s.applyScaleMode()
	if s.hover.IsAsteroid() {
		s.hover.Object.SetScalar(s.hover.Asteroid.CurrentScale * hoverScale)
	}
	s.metrics.Toggled()
	s.log.Debug("asteroid scale toggled", "mode", s.mode.String())
	return s.mode
}

func (s *Session) applyScaleMode() {
	for _, b := range s.registry.Asteroids() {
		b.ApplyScaleMode(s.mode == Exaggerated)
	}
}

func (s *Session) sizeLabel() string {
	return fmt.Sprintf("Asteroid Size: %s (press T to toggle)", s.mode)
}
