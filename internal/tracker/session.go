// Package tracker owns an asteroid tracking session: the solar-system scene,
// feed ingestion, the asteroid scale toggle, pointer interaction and the
// per-frame animation.
//
// A Session is driven by one frame loop. Every exported method takes the
// session lock, so snapshot readers on other goroutines see consistent state.
package tracker

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/geometry"
	"asteroid-tracker/internal/metrics"
	"asteroid-tracker/internal/scene"
	"asteroid-tracker/internal/vmath"
)

// DefaultDangerThreshold is the Earth distance, in scene units, under which
// an asteroid is flagged as dangerous.
const DefaultDangerThreshold = 100

const (
	sunRadius   = 30
	earthRadius = 15
	moonRadius  = 4
	earthTilt   = 23.5

	asteroidDetail = 32
	asteroidNoise  = 0.6
)

// Options configures a Session. The zero value is usable.
type Options struct {
	DangerThreshold float64
	Mode            ScaleMode
	// Aspect is the initial width/height ratio of the view.
	Aspect float64
	// Rand drives mesh noise and spin. nil uses the global source.
	Rand    geometry.Source
	Metrics *metrics.Collector
	Logger  *slog.Logger
	Now     func() time.Time
}

type sourceFunc func() float64

func (f sourceFunc) Float64() float64 { return f() }

// overlay is a decorative shell that follows Earth and spins on its own.
type overlay struct {
	object *scene.Object
	spin   float64
}

// Session is one interactive tracking session.
type Session struct {
	mu sync.Mutex

	scene    *scene.Scene
	camera   *scene.Camera
	controls *scene.OrbitControls
	registry *body.Registry
	overlays []overlay
	tc, sz   *body.Body

	mode       ScaleMode
	hover      *body.Body
	cursor     Cursor
	tooltip    Tooltip
	popup      Popup
	focusLabel string
	tween      *scene.Tween

	earthAngle, moonAngle float64
	tcAngle, szAngle      float64
	started               time.Time

	loadOnce  sync.Once
	threshold float64
	rnd       geometry.Source
	metrics   *metrics.Collector
	log       *slog.Logger
	now       func() time.Time
}

// New builds the Sun, Earth with its overlays, the Moon and the two demo
// asteroids, and positions the camera.
func New(opts Options) (*Session, error) {
	s := &Session{
		scene:      scene.New(),
		registry:   body.NewRegistry(),
		mode:       opts.Mode,
		cursor:     CursorDefault,
		focusLabel: "Focused: Earth",
		threshold:  opts.DangerThreshold,
		rnd:        opts.Rand,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if s.threshold <= 0 {
		s.threshold = DefaultDangerThreshold
	}
	if s.rnd == nil {
		s.rnd = sourceFunc(rand.Float64)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.started = s.now()

	aspect := opts.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	s.camera = scene.NewCamera(75, aspect, 0.1, 5000)
	s.camera.Position = vmath.Vec3{Y: 100, Z: 400}
	s.camera.UpdateProjection()
	s.controls = scene.NewOrbitControls(s.camera)
	s.controls.EnableDamping = true

	if err := s.buildSolarSystem(); err != nil {
		return nil, err
	}
	s.metrics.SetBodies(s.countByKind())
	return s, nil
}

func (s *Session) buildSolarSystem() error {
	sunMesh, err := geometry.Sphere(sunRadius, 32, 32)
	if err != nil {
		return fmt.Errorf("sun mesh: %w", err)
	}
	sun := &body.Body{
		Name:          "Sun",
		Kind:          body.KindStar,
		Object:        scene.NewObject("Sun", sunMesh, &scene.Material{Color: 0xffb300, Shader: true}),
		BaseIntensity: 1,
	}
	s.add(sun)

	earthMesh, err := geometry.Sphere(earthRadius, 48, 48)
	if err != nil {
		return fmt.Errorf("earth mesh: %w", err)
	}
	earth := &body.Body{
		Name:          "Earth",
		Kind:          body.KindPlanet,
		Object:        scene.NewObject("Earth", earthMesh, &scene.Material{Color: 0x2a6fdb, EmissiveIntensity: 1}),
		BaseIntensity: 1,
	}
	earth.Object.Rotation.Z = vmath.DegToRad(earthTilt)
	s.add(earth)

	for _, o := range []struct {
		name   string
		radius float64
		color  scene.Color
		spin   float64
	}{
		{"Earth night", earthRadius + 0.01, 0x10131f, 0.002},
		{"Clouds", earthRadius + 0.2, 0xf0f0f0, 0.0025},
	} {
		mesh, err := geometry.Sphere(o.radius, 48, 48)
		if err != nil {
			return fmt.Errorf("%s mesh: %w", o.name, err)
		}
		obj := scene.NewObject(o.name, mesh, &scene.Material{Color: o.color})
		obj.Pickable = false
		s.scene.Add(obj)
		s.overlays = append(s.overlays, overlay{object: obj, spin: o.spin})
	}

	moonMesh, err := geometry.Sphere(moonRadius, 24, 24)
	if err != nil {
		return fmt.Errorf("moon mesh: %w", err)
	}
	s.add(&body.Body{
		Name:          "Moon",
		Kind:          body.KindMoon,
		Object:        scene.NewObject("Moon", moonMesh, &scene.Material{Color: 0xbdbdbd, EmissiveIntensity: 1}),
		BaseIntensity: 1,
	})

	if s.tc, err = s.newAsteroid("2025 TC", 1.0, 0x888888, 1.0); err != nil {
		return err
	}
	if s.sz, err = s.newAsteroid("2025 SZ27", 2.5, 0x666666, 2.5); err != nil {
		return err
	}
	for _, b := range []*body.Body{s.tc, s.sz} {
		s.add(b)
		b.ApplyScaleMode(s.mode == Exaggerated)
	}
	return nil
}

// newAsteroid creates an unplaced asteroid body with a perturbed mesh and a
// random spin.
func (s *Session) newAsteroid(name string, radius float64, color scene.Color, realisticScale float64) (*body.Body, error) {
	mesh, err := geometry.Irregular(radius, asteroidDetail, asteroidNoise, s.rnd)
	if err != nil {
		return nil, fmt.Errorf("asteroid %q mesh: %w", name, err)
	}
	mat := &scene.Material{
		Color:             color,
		Emissive:          color,
		EmissiveIntensity: body.AsteroidBaseIntensity,
	}
	return &body.Body{
		Name:          name,
		Kind:          body.KindAsteroid,
		Object:        scene.NewObject(name, mesh, mat),
		Spin:          s.randomSpin(),
		BaseEmissive:  color,
		BaseIntensity: body.AsteroidBaseIntensity,
		Asteroid: &body.Asteroid{
			RealisticScale:   realisticScale,
			ExaggeratedScale: realisticScale * 10,
			CurrentScale:     realisticScale,
			DangerLevel:      body.DangerUnknown,
		},
	}, nil
}

func (s *Session) randomSpin() vmath.Vec3 {
	return vmath.Vec3{
		X: (s.rnd.Float64() - 0.5) * 0.01,
		Y: (s.rnd.Float64() - 0.5) * 0.01,
		Z: (s.rnd.Float64() - 0.5) * 0.01,
	}
}

func (s *Session) add(b *body.Body) {
	s.registry.Add(b)
	s.scene.Add(b.Object)
}

func (s *Session) countByKind() map[string]int {
	counts := map[string]int{}
	for _, b := range s.registry.All() {
		counts[b.Kind.String()]++
	}
	return counts
}

// View is the state a renderer draws from. It is only valid inside Inspect.
type View struct {
	Objects    []*scene.Object
	Bodies     []*body.Body
	Camera     *scene.Camera
	Hover      *body.Body
	Cursor     Cursor
	Tooltip    Tooltip
	Popup      Popup
	SizeLabel  string
	FocusLabel string
}

// Inspect calls fn with the session locked.
func (s *Session) Inspect(fn func(v View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(View{
		Objects:    s.scene.Objects(),
		Bodies:     s.registry.All(),
		Camera:     s.camera,
		Hover:      s.hover,
		Cursor:     s.cursor,
		Tooltip:    s.tooltip,
		Popup:      s.popup,
		SizeLabel:  s.sizeLabel(),
		FocusLabel: s.focusLabel,
	})
}

// Snapshot copies every body's state.
func (s *Session) Snapshot() []body.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot(s.hover, s.now())
}

// Len returns the number of bodies.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Len()
}

// Resize updates the camera projection for a new view size. Callers with
// non-square cells pass the physical width and height.
func (s *Session) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.SetAspect(width / height)
}

// Orbit queues an azimuth/polar camera rotation, in radians, applied on the
// next frame.
func (s *Session) Orbit(azimuth, polar float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls.Rotate(azimuth, polar)
}

// Zoom scales the camera distance on the next frame; factors below 1 move
// closer.
func (s *Session) Zoom(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls.Zoom(factor)
}

// Pan moves the camera target in the view plane, in world units, on the next
// frame.
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls.Pan(dx, dy)
}
