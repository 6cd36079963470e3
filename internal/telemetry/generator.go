package telemetry

import (
	"time"

	"asteroid-tracker/internal/body"
)

// Generator turns registry snapshots into rows tagged with a session id.
type Generator struct {
	SessionID string
}

// NewGenerator creates a generator for one session.
func NewGenerator(sessionID string) *Generator {
	return &Generator{SessionID: sessionID}
}

// BodyRows converts a snapshot into one row per body.
func (g *Generator) BodyRows(states []body.State) []BodyStateRow {
	rows := make([]BodyStateRow, 0, len(states))
	for _, st := range states {
		rows = append(rows, BodyStateRow{
			SessionID:         g.SessionID,
			BodyID:            st.ID,
			Name:              st.Name,
			Kind:              st.Kind,
			X:                 st.X,
			Y:                 st.Y,
			Z:                 st.Z,
			Scale:             st.Scale,
			EmissiveIntensity: st.EmissiveIntensity,
			Danger:            st.Danger,
			DangerLevel:       string(st.DangerLevel),
			DistanceToEarth:   st.DistanceToEarth,
			VelocityKmS:       st.VelocityKmS,
			MissDistanceKm:    st.MissDistanceKm,
			SizeMeters:        st.SizeMeters,
			Hovered:           st.Hovered,
			Timestamp:         st.Timestamp,
		})
	}
	return rows
}

// SessionRow summarises a snapshot.
func (g *Generator) SessionRow(states []body.State, scaleMode string, ts time.Time) SessionStateRow {
	row := SessionStateRow{
		SessionID: g.SessionID,
		ScaleMode: scaleMode,
		Bodies:    len(states),
		Timestamp: ts,
	}
	for _, st := range states {
		if st.Kind == body.KindAsteroid.String() {
			row.Asteroids++
		}
		if st.Danger {
			row.DangerCount++
		}
		if st.Hovered {
			row.Hovered = st.Name
		}
	}
	return row
}
