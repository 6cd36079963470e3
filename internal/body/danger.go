package body

// Impact energy thresholds of the velocity x size heuristic.
const (
	HighImpactEnergy   = 1500
	MediumImpactEnergy = 500
)

// ClassifyDanger rates an asteroid from velocity (km/s) and size (m).
// Missing values count as zero here, unlike the display which shows "No data".
func ClassifyDanger(velocity, sizeMeters *float64) DangerLevel {
	energy := valueOrZero(velocity) * valueOrZero(sizeMeters)
	switch {
	case energy > HighImpactEnergy:
		return DangerHigh
	case energy > MediumImpactEnergy:
		return DangerMedium
	default:
		return DangerLow
	}
}

// Color is the display colour for a danger level.
func (d DangerLevel) Color() string {
	switch d {
	case DangerHigh:
		return "red"
	case DangerMedium:
		return "orange"
	default:
		return "lime"
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
