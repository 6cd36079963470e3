package tracker

import (
	"context"
	"fmt"
	"math"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/neows"
	"asteroid-tracker/internal/scene"
	"asteroid-tracker/internal/vmath"
)

// SceneUnitsPerKm maps kilometres to scene units: Earth's 6371 km radius is
// 15 units.
const SceneUnitsPerKm = earthRadius / 6371.0

const (
	defaultMissKm     = 100000
	maxPlacement      = 1500
	minDisplayRadius  = 0.4
	noSizeRadius      = 0.6
	ingestedColor     = scene.Color(0x777777)
	verticalSpreading = 60
)

// FeedSource supplies near-Earth-object records for a date window.
type FeedSource interface {
	Feed(ctx context.Context, start, end string) ([]neows.Record, error)
}

// Mapping is a feed record translated into scene terms.
type Mapping struct {
	ID            string
	Name          string
	DisplayRadius float64
	Position      vmath.Vec3
	DangerLevel   body.DangerLevel
	Velocity      *float64
	MissDistance  *float64
	SizeMeters    *float64
	Hazardous     *bool
}

// MapRecord places record i of n around the origin at its miss distance and
// sizes it for visibility.
func MapRecord(i, n int, rec neows.Record) Mapping {
	m := Mapping{
		ID:            rec.ID,
		Name:          rec.Name,
		DisplayRadius: noSizeRadius,
		Velocity:      rec.VelocityKmS,
		MissDistance:  rec.MissDistanceKm,
		SizeMeters:    rec.DiameterMaxMeters,
		Hazardous:     rec.Hazardous,
		DangerLevel:   body.ClassifyDanger(rec.VelocityKmS, rec.DiameterMaxMeters),
	}
	if m.Name == "" {
		m.Name = fmt.Sprintf("NEO-%d", i)
	}
	if m.SizeMeters != nil {
		m.DisplayRadius = math.Max(*m.SizeMeters/1000*SceneUnitsPerKm*100, minDisplayRadius)
	}

	miss := float64(defaultMissKm)
	if m.MissDistance != nil {
		miss = *m.MissDistance
	}
	r := math.Min(miss*SceneUnitsPerKm, maxPlacement)
	angle := float64(i) * 2 * math.Pi / float64(max(n, 1))
	m.Position = vmath.Vec3{
		X: math.Cos(angle) * r,
		Y: float64(i%3-1) * verticalSpreading,
		Z: math.Sin(angle) * r,
	}
	return m
}

// Ingest adds one asteroid per record and applies the current scale mode to
// each. It returns the bodies added.
func (s *Session) Ingest(records []neows.Record) []*body.Body {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]*body.Body, 0, len(records))
	for i, rec := range records {
		m := MapRecord(i, len(records), rec)
		b, err := s.newAsteroid(m.Name, m.DisplayRadius, ingestedColor, m.DisplayRadius)
		if err != nil {
			s.log.Warn("skipping record", "name", m.Name, "err", err)
			continue
		}
		b.Object.Position = m.Position
		a := b.Asteroid
		a.Velocity = m.Velocity
		a.MissDistance = m.MissDistance
		a.SizeMeters = m.SizeMeters
		a.Hazardous = m.Hazardous
		a.DangerLevel = m.DangerLevel
		a.NEOID = m.ID
		s.add(b)
		b.ApplyScaleMode(s.mode == Exaggerated)
		added = append(added, b)
	}
	s.metrics.SetBodies(s.countByKind())
	return added
}

// LoadResult is the outcome of one feed fetch.
type LoadResult struct {
	Start, End string
	Records    []neows.Record
	Err        error
}

// Fetch queries src for the window starting now. It does not touch session
// state and may run off the frame loop.
func (s *Session) Fetch(ctx context.Context, src FeedSource) LoadResult {
	start, end := neows.Window(s.now())
	recs, err := src.Feed(ctx, start, end)
	return LoadResult{Start: start, End: end, Records: recs, Err: err}
}

// StartLoad fetches the feed in the background, once per session. Later calls
// return a closed channel.
func (s *Session) StartLoad(ctx context.Context, src FeedSource) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	started := false
	s.loadOnce.Do(func() {
		started = true
		go func() {
			defer close(ch)
			ch <- s.Fetch(ctx, src)
		}()
	})
	if !started {
		close(ch)
	}
	return ch
}

// ApplyLoad ingests a fetch result. A failed fetch is logged and leaves the
// registry unchanged. It returns the number of bodies added.
func (s *Session) ApplyLoad(res LoadResult) int {
	s.metrics.FeedFetched(res.Err, len(res.Records))
	if res.Err != nil {
		s.log.Error("error fetching asteroid data", "start", res.Start, "end", res.End, "err", res.Err)
		return 0
	}
	added := s.Ingest(res.Records)
	s.log.Info("loaded asteroids from NeoWs", "count", len(added), "start", res.Start, "end", res.End)
	return len(added)
}
