// Simulator driving a headless tracking session and emitting body state
package sim

import (
	"context"
	"time"

	"asteroid-tracker/internal/logging"
	"asteroid-tracker/internal/metrics"
	"asteroid-tracker/internal/telemetry"
	"asteroid-tracker/internal/tracker"
)

// Settings tunes the simulator loop.
type Settings struct {
	// FrameInterval is the ticker period of the frame loop.
	FrameInterval time.Duration
	// SampleEvery emits rows on every Nth frame. Zero or one means every frame.
	SampleEvery int
	Metrics     *metrics.Collector
	Now         func() time.Time
}

// Simulator owns a session's frame loop in headless mode.
type Simulator struct {
	session     *tracker.Session
	gen         *telemetry.Generator
	feed        tracker.FeedSource
	writer      StateWriter
	interval    time.Duration
	sampleEvery int
	frames      int
	metrics     *metrics.Collector
	now         func() time.Time
}

// NewSimulator wires a session to a feed and a writer. feed and writer may
// be nil.
func NewSimulator(sessionID string, session *tracker.Session, feed tracker.FeedSource, writer StateWriter, st Settings) *Simulator {
	interval := st.FrameInterval
	if interval <= 0 {
		interval = time.Second / 30
	}
	sample := st.SampleEvery
	if sample < 1 {
		sample = 1
	}
	now := st.Now
	if now == nil {
		now = time.Now
	}
	return &Simulator{
		session:     session,
		gen:         telemetry.NewGenerator(sessionID),
		feed:        feed,
		writer:      writer,
		interval:    interval,
		sampleEvery: sample,
		metrics:     st.Metrics,
		now:         now,
	}
}

// Run starts the frame loop and stops when the context is done. The feed is
// fetched once in the background and ingested on the loop.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "frame_interval", s.interval, "sample_every", s.sampleEvery)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var load <-chan tracker.LoadResult
	if s.feed != nil {
		load = s.session.StartLoad(ctx, s.feed)
	}

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case res, ok := <-load:
			load = nil
			if ok {
				s.session.ApplyLoad(res)
			}
		case <-ctx.Done():
			log.Info("stopping simulator", "frames", s.frames)
			return
		}
	}
}

// tick advances one frame and writes rows when a sample is due.
func (s *Simulator) tick(ctx context.Context) {
	now := s.now()
	s.session.Frame(now)
	s.frames++
	if s.writer == nil || s.frames%s.sampleEvery != 0 {
		return
	}

	log := logging.FromContext(ctx)
	states := s.session.Snapshot()
	rows := s.gen.BodyRows(states)
	err := writeRows(s.writer, rows)
	if err != nil {
		log.Error("state write failed", "rows", len(rows), "err", err)
	}
	s.metrics.StatesWritten(len(rows), err)

	if sw, ok := s.writer.(SessionWriter); ok {
		row := s.gen.SessionRow(states, s.session.Mode().String(), now)
		if err := sw.WriteSession(row); err != nil {
			log.Error("session write failed", "err", err)
		}
	}
}

// Frames returns the number of frames run so far.
func (s *Simulator) Frames() int { return s.frames }
