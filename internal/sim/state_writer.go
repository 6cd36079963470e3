package sim

import "asteroid-tracker/internal/telemetry"

// StateWriter receives per-frame body state rows.
type StateWriter interface {
	Write(telemetry.BodyStateRow) error
}

// Optional: writers may support batch mode for body rows.
type batchWriter interface {
	WriteBatch([]telemetry.BodyStateRow) error
}

// SessionWriter receives per-frame session summaries. Writers passed to the
// simulator that also implement it get summaries too.
type SessionWriter interface {
	WriteSession(telemetry.SessionStateRow) error
}

// writeRows hands rows to w, in one batch when supported.
func writeRows(w StateWriter, rows []telemetry.BodyStateRow) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
