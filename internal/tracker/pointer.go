package tracker

import (
	"fmt"
	"time"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/scene"
)

const (
	hoverScale    = 1.2
	focusDuration = 800 * time.Millisecond
	noData        = "No data"
)

// Cursor is the pointer shape a front end should show.
type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorPointer Cursor = "pointer"
)

// Pointer is a pointer position on a view surface of Width x Height.
type Pointer struct {
	X, Y          float64
	Width, Height float64
}

// NDC maps the pointer to normalised device coordinates, y up.
func (p Pointer) NDC() (x, y float64, ok bool) {
	if p.Width <= 0 || p.Height <= 0 {
		return 0, 0, false
	}
	return p.X/p.Width*2 - 1, -(p.Y/p.Height*2 - 1), true
}

// Tooltip is the hover label anchored at the pointer.
type Tooltip struct {
	Visible bool
	X, Y    float64
	Text    string
}

// Popup is the asteroid detail panel. Values are preformatted; missing
// telemetry reads "No data".
type Popup struct {
	Visible      bool
	Name         string
	Velocity     string
	Size         string
	MissDistance string
	Hazardous    string
	Danger       body.DangerLevel
	DangerColor  string
}

// Lines renders the popup body, one field per line.
func (p Popup) Lines() []string {
	return []string{
		"Velocity: " + p.Velocity,
		"Size: " + p.Size,
		"Miss Distance: " + p.MissDistance,
		"PHA: " + p.Hazardous,
		"Impact Danger: " + string(p.Danger),
	}
}

// PointerMove updates the hover target, its highlight and the tooltip.
func (s *Session) PointerMove(p Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hit := s.pick(p)
	if hit == nil {
		s.restoreHover()
		s.hover = nil
		s.cursor = CursorDefault
		s.tooltip = Tooltip{}
		return
	}
	if hit != s.hover {
		s.restoreHover()
		s.hover = hit
		s.cursor = CursorPointer
	}
	s.tooltip = Tooltip{Visible: true, X: p.X, Y: p.Y, Text: s.tooltipText(hit)}

	if hit.Object.Material.SupportsEmissive() {
		hit.Object.Material.EmissiveIntensity = body.HoverIntensity
	}
	if hit.IsAsteroid() {
		hit.Object.SetScalar(hit.Asteroid.CurrentScale * hoverScale)
	}
}

// Click focuses the camera on the body under the pointer. Asteroids open the
// detail popup; other bodies close it. A miss changes nothing.
func (s *Session) Click(p Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hit := s.pick(p)
	if hit == nil {
		return
	}
	s.tween = &scene.Tween{
		From:     s.controls.Target,
		To:       hit.Position(),
		Start:    s.now(),
		Duration: focusDuration,
	}
	name := hit.Name
	if name == "" {
		name = "Unknown"
	}
	s.focusLabel = "Focused: " + name

	if hit.IsAsteroid() {
		s.popup = newPopup(hit)
	} else {
		s.popup = Popup{}
	}
	s.metrics.Picked(hit.Kind.String())
	s.log.Debug("body selected", "name", hit.Name, "kind", hit.Kind.String())
}

// ClosePopup hides the asteroid popup.
func (s *Session) ClosePopup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popup.Visible = false
}

func (s *Session) pick(p Pointer) *body.Body {
	x, y, ok := p.NDC()
	if !ok {
		return nil
	}
	pickable := s.registry.Pickable()
	objs := make([]*scene.Object, len(pickable))
	for i, b := range pickable {
		objs[i] = b.Object
	}
	var rc scene.Raycaster
	rc.SetFromCamera(x, y, s.camera)
	hits := rc.IntersectObjects(objs)
	if len(hits) == 0 {
		return nil
	}
	b, _ := s.registry.ByObject(hits[0].Object.ID)
	return b
}

func (s *Session) restoreHover() {
	if s.hover != nil {
		s.hover.Restore()
	}
}

func (s *Session) tooltipText(b *body.Body) string {
	name := b.Name
	if name == "" {
		name = "Body"
	}
	var dist float64
	if earth := s.registry.Earth(); earth != nil {
		dist = b.Position().DistanceTo(earth.Position())
	}
	text := fmt.Sprintf("%s • Distance to Earth: %.1f units", name, dist)
	if b.IsAsteroid() && b.Asteroid.Velocity != nil {
		text += fmt.Sprintf(" • Velocity: %.2f km/s", *b.Asteroid.Velocity)
	}
	return text
}

func newPopup(b *body.Body) Popup {
	a := b.Asteroid
	name := b.Name
	if name == "" {
		name = "Asteroid"
	}
	level := a.DangerLevel
	if level == "" {
		level = body.DangerUnknown
	}
	hazardous := noData
	if a.Hazardous != nil {
		hazardous = "no"
		if *a.Hazardous {
			hazardous = "yes"
		}
	}
	return Popup{
		Visible:      true,
		Name:         name,
		Velocity:     formatValue(a.Velocity, "%.2f km/s"),
		Size:         formatValue(a.SizeMeters, "%.1f m"),
		MissDistance: formatValue(a.MissDistance, "%.0f km"),
		Hazardous:    hazardous,
		Danger:       level,
		DangerColor:  level.Color(),
	}
}

func formatValue(v *float64, format string) string {
	if v == nil {
		return noData
	}
	return fmt.Sprintf(format, *v)
}
