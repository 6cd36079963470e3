// Body state rows with greptime tags
package telemetry

import "time"

// Default GreptimeDB table names.
const (
	DefaultBodyTable    = "body_states"
	DefaultSessionTable = "tracker_sessions"
)

// BodyStateRow is one body's state at one frame.
type BodyStateRow struct {
	SessionID         string    `json:"session_id"`         // TAG
	BodyID            string    `json:"body_id"`            // TAG
	Name              string    `json:"name"`               // FIELD
	Kind              string    `json:"kind"`               // FIELD
	X                 float64   `json:"x"`                  // FIELD
	Y                 float64   `json:"y"`                  // FIELD
	Z                 float64   `json:"z"`                  // FIELD
	Scale             float64   `json:"scale"`              // FIELD
	EmissiveIntensity float64   `json:"emissive_intensity"` // FIELD
	Danger            bool      `json:"danger"`             // FIELD
	DangerLevel       string    `json:"danger_level,omitempty"`
	DistanceToEarth   float64   `json:"distance_to_earth"`
	VelocityKmS       *float64  `json:"velocity_km_s,omitempty"`
	MissDistanceKm    *float64  `json:"miss_distance_km,omitempty"`
	SizeMeters        *float64  `json:"size_m,omitempty"`
	Hovered           bool      `json:"hovered"`
	Timestamp         time.Time `json:"ts"` // TIME INDEX
}

func (BodyStateRow) TableName() string { return DefaultBodyTable }

// SessionStateRow summarises a session at one frame.
type SessionStateRow struct {
	SessionID   string    `json:"session_id"`
	ScaleMode   string    `json:"scale_mode"`
	Bodies      int       `json:"bodies"`
	Asteroids   int       `json:"asteroids"`
	DangerCount int       `json:"danger_count"`
	Hovered     string    `json:"hovered,omitempty"`
	Timestamp   time.Time `json:"ts"`
}

func (SessionStateRow) TableName() string { return DefaultSessionTable }
