package neows

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Record is one near-Earth object. Pointer fields are nil when the feed did
// not carry a usable value.
type Record struct {
	ID                string
	Name              string
	DiameterMaxMeters *float64
	VelocityKmS       *float64
	MissDistanceKm    *float64
	Hazardous         *bool
}

type rawRecord struct {
	ID                json.RawMessage `json:"id"`
	Name              json.RawMessage `json:"name"`
	EstimatedDiameter json.RawMessage `json:"estimated_diameter"`
	CloseApproachData json.RawMessage `json:"close_approach_data"`
	Hazardous         json.RawMessage `json:"is_potentially_hazardous_asteroid"`
}

// Records flattens the feed in ascending date order. Records without a name
// are named NEO-<index>.
func (f *FeedResponse) Records() []Record {
	dates := make([]string, 0, len(f.ByDate))
	for d := range f.ByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var out []Record
	for _, d := range dates {
		for _, raw := range f.ByDate[d] {
			rec := ParseRecord(raw)
			if rec.Name == "" {
				rec.Name = fmt.Sprintf("NEO-%d", len(out))
			}
			out = append(out, rec)
		}
	}
	return out
}

// ParseRecord extracts the fields used by the tracker from one raw record.
// It never fails; malformed fields come back empty.
func ParseRecord(data json.RawMessage) Record {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}
	}
	rec := Record{
		ID:   str(raw.ID),
		Name: str(raw.Name),
	}

	var diameter struct {
		Meters struct {
			Max json.RawMessage `json:"estimated_diameter_max"`
		} `json:"meters"`
	}
	if json.Unmarshal(raw.EstimatedDiameter, &diameter) == nil {
		rec.DiameterMaxMeters = number(diameter.Meters.Max)
	}

	var approaches []json.RawMessage
	if json.Unmarshal(raw.CloseApproachData, &approaches) == nil && len(approaches) > 0 {
		var first struct {
			RelativeVelocity struct {
				KmPerSecond json.RawMessage `json:"kilometers_per_second"`
			} `json:"relative_velocity"`
			MissDistance struct {
				Kilometers json.RawMessage `json:"kilometers"`
			} `json:"miss_distance"`
		}
		if json.Unmarshal(approaches[0], &first) == nil {
			rec.VelocityKmS = number(first.RelativeVelocity.KmPerSecond)
			rec.MissDistanceKm = number(first.MissDistance.Kilometers)
		}
	}

	var hazardous bool
	if len(raw.Hazardous) > 0 && string(raw.Hazardous) != "null" && json.Unmarshal(raw.Hazardous, &hazardous) == nil {
		rec.Hazardous = &hazardous
	}
	return rec
}

// number accepts a JSON number or a numeric string. Non-finite values are
// treated as missing.
func number(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		v, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func str(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
