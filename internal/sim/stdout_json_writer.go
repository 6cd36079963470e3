package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"asteroid-tracker/internal/telemetry"
)

// JSONStdoutWriter prints rows as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

func (w *JSONStdoutWriter) emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// Write outputs a body state row in JSON format.
func (w *JSONStdoutWriter) Write(row telemetry.BodyStateRow) error {
	return w.emit(row)
}

// WriteBatch outputs multiple body state rows in JSON format.
func (w *JSONStdoutWriter) WriteBatch(rows []telemetry.BodyStateRow) error {
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSession outputs a session summary in JSON format.
func (w *JSONStdoutWriter) WriteSession(row telemetry.SessionStateRow) error {
	return w.emit(row)
}
