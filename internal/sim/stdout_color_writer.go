// ColorStdoutWriter prints human-friendly, colorized body state to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// Overview is printed once before the first row.
type Overview struct {
	SessionID       string
	ScaleMode       string
	DangerThreshold float64
	FrameInterval   time.Duration
	Endpoint        string
}

// ColorStdoutWriter prints body rows using ANSI colors. Only asteroids and
// hovered bodies are printed to keep the stream readable.
type ColorStdoutWriter struct {
	overview *Overview
	out      io.Writer
	once     sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(overview *Overview) *ColorStdoutWriter {
	return &ColorStdoutWriter{overview: overview, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.overview == nil {
		return
	}
	fmt.Fprintln(w.out, "Tracker Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Session:\t%s\n", w.overview.SessionID)
	fmt.Fprintf(tw, "Scale Mode:\t%s\n", w.overview.ScaleMode)
	fmt.Fprintf(tw, "Danger Threshold:\t%.0f units\n", w.overview.DangerThreshold)
	fmt.Fprintf(tw, "Frame Interval:\t%s\n", w.overview.FrameInterval)
	fmt.Fprintf(tw, "Feed:\t%s\n", w.overview.Endpoint)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func dangerColor(level string) string {
	switch body.DangerLevel(level) {
	case body.DangerHigh:
		return colorRed
	case body.DangerMedium:
		return colorYellow
	default:
		return colorGreen
	}
}

// Write outputs a single body row in colorized format.
func (w *ColorStdoutWriter) Write(row telemetry.BodyStateRow) error {
	w.once.Do(w.printOverview)
	if row.Kind != body.KindAsteroid.String() && !row.Hovered {
		return nil
	}

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%s%s%s ", colorBlue, row.Name, colorReset)
	fmt.Fprintf(w.out, "%spos=(%.1f,%.1f,%.1f)%s ", colorCyan, row.X, row.Y, row.Z, colorReset)
	fmt.Fprintf(w.out, "%searth=%.1f%s ", colorMagenta, row.DistanceToEarth, colorReset)
	fmt.Fprintf(w.out, "scale=%.2f ", row.Scale)
	if row.VelocityKmS != nil {
		fmt.Fprintf(w.out, "%svel=%.2fkm/s%s ", colorYellow, *row.VelocityKmS, colorReset)
	}
	if row.DangerLevel != "" {
		fmt.Fprintf(w.out, "%simpact=%s%s", dangerColor(row.DangerLevel), row.DangerLevel, colorReset)
	}
	if row.Danger {
		fmt.Fprintf(w.out, " %sDANGER%s", colorRed, colorReset)
	}
	if row.Hovered {
		fmt.Fprintf(w.out, " %shover%s", colorMagenta, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}

// WriteBatch outputs multiple body rows.
func (w *ColorStdoutWriter) WriteBatch(rows []telemetry.BodyStateRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteSession prints a session summary line.
func (w *ColorStdoutWriter) WriteSession(row telemetry.SessionStateRow) error {
	w.once.Do(w.printOverview)
	dc := colorGreen
	if row.DangerCount > 0 {
		dc = colorRed
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sSESSION%s mode=%s bodies=%d asteroids=%d %sdanger=%d%s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, colorReset, row.ScaleMode, row.Bodies, row.Asteroids,
		dc, row.DangerCount, colorReset)
	if row.Hovered != "" {
		fmt.Fprintf(w.out, " hover=%s", row.Hovered)
	}
	fmt.Fprintln(w.out)
	return nil
}
