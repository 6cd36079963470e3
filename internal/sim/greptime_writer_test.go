package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"

	"asteroid-tracker/internal/telemetry"
)

type mockGreptimeClient struct {
	table *table.Table
	err   error
}

func (m *mockGreptimeClient) Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error) {
	if len(tables) > 0 {
		m.table = tables[0]
	}
	return &gpb.GreptimeResponse{}, m.err
}

func TestGreptimeWriterBodyRows(t *testing.T) {
	v, miss, size := 12.5, 50000.0, 200.0
	rows := []telemetry.BodyStateRow{
		{SessionID: "s1", BodyID: "b1", Name: "2025 AB", Kind: "asteroid", X: 3, Danger: true, DangerLevel: "High",
			VelocityKmS: &v, MissDistanceKm: &miss, SizeMeters: &size, Timestamp: time.Unix(0, 0).UTC()},
		{SessionID: "s1", BodyID: "b2", Name: "Earth", Kind: "planet", Timestamp: time.Unix(0, 0).UTC()},
	}
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, bodyTable: "body_states"}

	if err := w.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if m.table == nil {
		t.Fatalf("expected table to be captured")
	}
	got := m.table.GetRows()
	if len(got.Schema) != 17 {
		t.Fatalf("unexpected schema length: %d", len(got.Schema))
	}
	if got.Schema[0].SemanticType != gpb.SemanticType_TAG || got.Schema[16].SemanticType != gpb.SemanticType_TIMESTAMP {
		t.Fatalf("unexpected semantic types: %v %v", got.Schema[0].SemanticType, got.Schema[16].SemanticType)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	first := got.Rows[0].Values
	if first[2].GetStringValue() != "2025 AB" || first[4].GetF64Value() != 3 || !first[9].GetBoolValue() {
		t.Fatalf("unexpected first row values: %v", first)
	}
	if first[12].GetF64Value() != 12.5 || first[13].GetF64Value() != 50000 || first[14].GetF64Value() != 200 {
		t.Fatalf("telemetry = %v %v %v", first[12], first[13], first[14])
	}
	// missing telemetry is written as a null cell, not a zero
	second := got.Rows[1].Values
	for i, name := range map[int]string{12: "velocity", 13: "miss distance", 14: "size"} {
		if second[i].GetValueData() != nil {
			t.Fatalf("missing %s should be null, got %v", name, second[i])
		}
	}
}

func TestGreptimeWriterSession(t *testing.T) {
	m := &mockGreptimeClient{}
	w := &GreptimeDBWriter{client: m, sessionTable: "tracker_sessions"}
	row := telemetry.SessionStateRow{SessionID: "s1", ScaleMode: "Exaggerated", Bodies: 5, DangerCount: 2, Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteSession(row); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	vals := m.table.GetRows().Rows[0].Values
	if vals[0].GetStringValue() != "s1" || vals[2].GetI64Value() != 5 || vals[4].GetI64Value() != 2 {
		t.Fatalf("unexpected session values: %v", vals)
	}
}

func TestGreptimeWriterPropagatesErrors(t *testing.T) {
	m := &mockGreptimeClient{err: errors.New("unavailable")}
	w := &GreptimeDBWriter{client: m, bodyTable: "body_states"}
	if err := w.Write(telemetry.BodyStateRow{SessionID: "s", BodyID: "b", Timestamp: time.Now()}); err == nil {
		t.Fatalf("expected write error")
	}
	if err := w.WriteBatch(nil); err != nil {
		t.Fatalf("empty batch should be a no-op: %v", err)
	}
}

func TestSplitEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		host string
		port int
		err  bool
	}{
		{"localhost", "localhost", 4001, false},
		{"db.internal:5001", "db.internal", 5001, false},
		{"db:http", "", 0, true},
	}
	for _, tc := range cases {
		host, port, err := splitEndpoint(tc.in)
		if (err != nil) != tc.err || host != tc.host || port != tc.port {
			t.Errorf("splitEndpoint(%q) = %q %d %v", tc.in, host, port, err)
		}
	}
}
