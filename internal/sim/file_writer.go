package sim

import (
	"encoding/json"
	"os"

	"asteroid-tracker/internal/telemetry"
)

// FileWriter writes body and session rows to JSONL files.
type FileWriter struct {
	stateFile   *os.File
	sessionFile *os.File
	stateEnc    *json.Encoder
	sessionEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. sessionPath may be empty to skip
// session summaries.
func NewFileWriter(statePath, sessionPath string) (*FileWriter, error) {
	sf, err := os.Create(statePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{stateFile: sf, stateEnc: json.NewEncoder(sf)}
	if sessionPath != "" {
		f, err := os.Create(sessionPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.sessionFile = f
		fw.sessionEnc = json.NewEncoder(f)
	}
	return fw, nil
}

// Write logs a single body row.
func (f *FileWriter) Write(row telemetry.BodyStateRow) error {
	return f.stateEnc.Encode(row)
}

// WriteBatch logs multiple body rows.
func (f *FileWriter) WriteBatch(rows []telemetry.BodyStateRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSession logs a session summary, if enabled.
func (f *FileWriter) WriteSession(row telemetry.SessionStateRow) error {
	if f.sessionEnc == nil {
		return nil
	}
	return f.sessionEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	for _, file := range []*os.File{f.stateFile, f.sessionFile} {
		if file == nil {
			continue
		}
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
