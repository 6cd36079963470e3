package sim

import (
	"errors"

	"asteroid-tracker/internal/telemetry"
)

// MultiWriter fans rows out to several writers. Every writer is tried; the
// errors are joined.
type MultiWriter struct {
	writers []StateWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...StateWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a body row to all writers.
func (mw *MultiWriter) Write(row telemetry.BodyStateRow) error {
	var errs []error
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteBatch sends rows to all writers, using batch mode where supported.
func (mw *MultiWriter) WriteBatch(rows []telemetry.BodyStateRow) error {
	var errs []error
	for _, w := range mw.writers {
		if err := writeRows(w, rows); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteSession forwards a summary to writers that accept summaries.
func (mw *MultiWriter) WriteSession(row telemetry.SessionStateRow) error {
	var errs []error
	for _, w := range mw.writers {
		sw, ok := w.(SessionWriter)
		if !ok {
			continue
		}
		if err := sw.WriteSession(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
