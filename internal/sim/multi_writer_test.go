package sim

import (
	"errors"
	"testing"

	"asteroid-tracker/internal/telemetry"
)

type collectWriter struct {
	rows     []telemetry.BodyStateRow
	sessions []telemetry.SessionStateRow
	batches  int
	err      error
}

func (c *collectWriter) Write(r telemetry.BodyStateRow) error {
	c.rows = append(c.rows, r)
	return c.err
}

func (c *collectWriter) WriteSession(r telemetry.SessionStateRow) error {
	c.sessions = append(c.sessions, r)
	return nil
}

type batchCollectWriter struct{ collectWriter }

func (b *batchCollectWriter) WriteBatch(rows []telemetry.BodyStateRow) error {
	b.batches++
	b.rows = append(b.rows, rows...)
	return nil
}

type plainWriter struct{ n int }

func (p *plainWriter) Write(telemetry.BodyStateRow) error { p.n++; return nil }

func TestMultiWriterFanOut(t *testing.T) {
	single := &collectWriter{}
	batch := &batchCollectWriter{}
	plain := &plainWriter{}
	mw := NewMultiWriter(single, batch, plain)

	rows := []telemetry.BodyStateRow{{BodyID: "a"}, {BodyID: "b"}}
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if len(single.rows) != 2 || len(batch.rows) != 2 || batch.batches != 1 || plain.n != 2 {
		t.Fatalf("fan-out mismatch: %d %d %d %d", len(single.rows), len(batch.rows), batch.batches, plain.n)
	}
	if err := mw.WriteSession(telemetry.SessionStateRow{Bodies: 2}); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if len(single.sessions) != 1 || len(batch.sessions) != 1 {
		t.Fatalf("session rows not forwarded")
	}
}

func TestMultiWriterJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := &collectWriter{err: boom}
	ok := &collectWriter{}
	mw := NewMultiWriter(failing, ok)
	err := mw.Write(telemetry.BodyStateRow{BodyID: "a"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ok.rows) != 1 {
		t.Fatalf("later writer skipped after error")
	}
}
