package sim

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"asteroid-tracker/internal/telemetry"
)

const defaultGreptimePort = 4001

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes body and session rows to GreptimeDB via the
// ingester client. Tables are created by GreptimeDB on first write.
type GreptimeDBWriter struct {
	client       greptimeClient
	bodyTable    string
	sessionTable string
	log          *slog.Logger
}

// NewGreptimeDBWriter connects to endpoint (host or host:port).
func NewGreptimeDBWriter(endpoint, database, bodyTable string) (*GreptimeDBWriter, error) {
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	if bodyTable == "" {
		bodyTable = telemetry.DefaultBodyTable
	}
	return &GreptimeDBWriter{
		client:       client,
		bodyTable:    bodyTable,
		sessionTable: telemetry.DefaultSessionTable,
		log:          slog.Default(),
	}, nil
}

func splitEndpoint(endpoint string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return endpoint, defaultGreptimePort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("greptime endpoint %q: invalid port: %w", endpoint, err)
	}
	return host, port, nil
}

func (w *GreptimeDBWriter) logger() *slog.Logger {
	if w.log == nil {
		return slog.Default()
	}
	return w.log
}

// Write inserts a single body row.
func (w *GreptimeDBWriter) Write(row telemetry.BodyStateRow) error {
	return w.WriteBatch([]telemetry.BodyStateRow{row})
}

func bodyTable(name string) (*table.Table, error) {
	tbl, err := table.New(name)
	if err != nil {
		return nil, err
	}
	tags := []string{"session_id", "body_id"}
	for _, c := range tags {
		if err := tbl.AddTagColumn(c, types.STRING); err != nil {
			return nil, err
		}
	}
	fields := []struct {
		name string
		typ  types.ColumnType
	}{
		{"name", types.STRING},
		{"kind", types.STRING},
		{"x", types.FLOAT64},
		{"y", types.FLOAT64},
		{"z", types.FLOAT64},
		{"scale", types.FLOAT64},
		{"emissive_intensity", types.FLOAT64},
		{"danger", types.BOOLEAN},
		{"danger_level", types.STRING},
		{"distance_to_earth", types.FLOAT64},
		{"velocity_km_s", types.FLOAT64},
		{"miss_distance_km", types.FLOAT64},
		{"size_m", types.FLOAT64},
		{"hovered", types.BOOLEAN},
	}
	for _, f := range fields {
		if err := tbl.AddFieldColumn(f.name, f.typ); err != nil {
			return nil, err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}
	return tbl, nil
}

// nullable maps a missing value to a null cell.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// WriteBatch inserts multiple body rows in one request.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.BodyStateRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := bodyTable(w.bodyTable)
	if err != nil {
		return fmt.Errorf("build %s schema: %w", w.bodyTable, err)
	}
	for _, r := range rows {
		if err := tbl.AddRow(
			r.SessionID, r.BodyID,
			r.Name, r.Kind,
			r.X, r.Y, r.Z,
			r.Scale, r.EmissiveIntensity,
			r.Danger, r.DangerLevel, r.DistanceToEarth,
			nullable(r.VelocityKmS), nullable(r.MissDistanceKm), nullable(r.SizeMeters),
			r.Hovered, r.Timestamp,
		); err != nil {
			return fmt.Errorf("add %s row: %w", w.bodyTable, err)
		}
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.logger().Error("greptime write failed", "table", w.bodyTable, "err", err)
		return err
	}
	w.logger().Debug("greptime rows written", "table", w.bodyTable, "rows", len(rows))
	return nil
}

// WriteSession inserts a session summary.
func (w *GreptimeDBWriter) WriteSession(row telemetry.SessionStateRow) error {
	tbl, err := table.New(w.sessionTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("session_id", types.STRING); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		typ  types.ColumnType
	}{
		{"scale_mode", types.STRING},
		{"bodies", types.INT64},
		{"asteroids", types.INT64},
		{"danger_count", types.INT64},
		{"hovered", types.STRING},
	} {
		if err := tbl.AddFieldColumn(f.name, f.typ); err != nil {
			return err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}
	if err := tbl.AddRow(row.SessionID, row.ScaleMode,
		int64(row.Bodies), int64(row.Asteroids), int64(row.DangerCount),
		row.Hovered, row.Timestamp); err != nil {
		return fmt.Errorf("add %s row: %w", w.sessionTable, err)
	}
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.logger().Error("greptime write failed", "table", w.sessionTable, "err", err)
		return err
	}
	return nil
}
