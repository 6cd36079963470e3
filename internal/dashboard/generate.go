// Package dashboard renders Grafana dashboards over the GreptimeDB body
// state tables.
package dashboard

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"asteroid-tracker/internal/telemetry"
)

//go:embed templates/*.json.tmpl
var templates embed.FS

var templateFiles = []string{
	"templates/asteroid-tracker-dashboard.json.tmpl",
}

// Params fills the dashboard templates. Empty fields take defaults; an empty
// Datasource is read from GREPTIMEDB_DATASOURCE_UID.
type Params struct {
	Datasource   string
	Database     string
	BodyTable    string
	SessionTable string
}

func (p *Params) resolve() error {
	if p.Datasource == "" {
		p.Datasource = os.Getenv("GREPTIMEDB_DATASOURCE_UID")
	}
	if p.Datasource == "" {
		return fmt.Errorf("datasource uid not set: pass one or set GREPTIMEDB_DATASOURCE_UID")
	}
	if p.Database == "" {
		p.Database = "public"
	}
	if p.BodyTable == "" {
		p.BodyTable = telemetry.DefaultBodyTable
	}
	if p.SessionTable == "" {
		p.SessionTable = telemetry.DefaultSessionTable
	}
	return nil
}

// Render executes the dashboard templates and writes them to outDir.
func Render(outDir string, p Params) error {
	if err := p.resolve(); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, name := range templateFiles {
		t, err := template.New(filepath.Base(name)).ParseFS(templates, name)
		if err != nil {
			return err
		}
		var out strings.Builder
		if err := t.Execute(&out, p); err != nil {
			return err
		}
		if !json.Valid([]byte(out.String())) {
			return fmt.Errorf("%s: rendered dashboard is not valid JSON", name)
		}
		outPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(name), ".tmpl"))
		if err := os.WriteFile(outPath, []byte(out.String()), 0o644); err != nil {
			return err
		}
	}
	return nil
}
