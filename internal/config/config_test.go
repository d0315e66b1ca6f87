package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/sqlnorm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend.Kind != backend.KindSQLite {
		t.Fatalf("default backend kind: %v", cfg.Backend.Kind)
	}
	if !cfg.IgnoreOrder || !cfg.NullEqual {
		t.Fatalf("comparison defaults: %+v", cfg)
	}
	if cfg.RequireAllMetrics {
		t.Fatalf("strict verdicts must be opt-in")
	}
	if cfg.Report.OutputDir != "out" {
		t.Fatalf("default output dir: %q", cfg.Report.OutputDir)
	}
	if cfg.Weights() != nil {
		t.Fatalf("no weights configured means nil override")
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Kind != backend.KindSQLite || cfg.Backend.StatementTimeoutMs != 30000 {
		t.Fatalf("defaults lost: %+v", cfg.Backend)
	}
}

func TestLoadOverrides(t *testing.T) {
	body := `
backend:
  kind: " MySQL "
  dsn: "user:pass@tcp(localhost:3306)/bench"
dialect: postgres
ignore_order: false
require_all_metrics: true
component_weights:
  Tables: 0.5
  columns: 0.5
report:
  output_dir: /tmp/reports
  archive: true
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Kind != backend.KindMySQL {
		t.Fatalf("kind should be trimmed and lowered: %q", cfg.Backend.Kind)
	}
	if cfg.IgnoreOrder {
		t.Fatalf("ignore_order override lost")
	}
	if !cfg.NullEqual {
		t.Fatalf("unset null_equal should keep its default")
	}
	if !cfg.RequireAllMetrics {
		t.Fatalf("require_all_metrics override lost")
	}
	if cfg.CompareOptions().IgnoreOrder {
		t.Fatalf("compare options should reflect the config")
	}

	weights := cfg.Weights()
	if len(weights) != 2 {
		t.Fatalf("weights: %v", weights)
	}
	if weights[sqlnorm.KindTables] != 0.5 || weights[sqlnorm.KindColumns] != 0.5 {
		t.Fatalf("weight keys should normalize to kinds: %v", weights)
	}
	if cfg.Report.OutputDir != "/tmp/reports" || !cfg.Report.Archive {
		t.Fatalf("report config: %+v", cfg.Report)
	}
}
