package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
grid:
  reference_date: "2024-03-18"
  timezone: "UTC"
output:
  format: json
log:
  file: /tmp/month-grid.log
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Grid.ReferenceDate != "2024-03-18" {
		t.Errorf("Grid.ReferenceDate = %q, want 2024-03-18", cfg.Grid.ReferenceDate)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Log.File != "/tmp/month-grid.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
	if cfg.Log.GetLevel() != zapcore.DebugLevel {
		t.Errorf("Log.GetLevel() = %v, want debug", cfg.Log.GetLevel())
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "grid: {}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Grid.Timezone != "Local" {
		t.Errorf("Grid.Timezone = %q, want Local", cfg.Grid.Timezone)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MONTHGRID_OUTPUT_FORMAT", "yaml")
	t.Setenv("MONTHGRID_GRID_REFERENCE_DATE", "01.09.2024")

	cfg, err := Load(writeConfig(t, "output:\n  format: text\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Grid.ReferenceDate != "01.09.2024" {
		t.Errorf("Grid.ReferenceDate = %q, want 01.09.2024", cfg.Grid.ReferenceDate)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown format",
			content: "output:\n  format: xml\n",
			wantErr: "output.format",
		},
		{
			name:    "unknown timezone",
			content: "grid:\n  timezone: Mars/Olympus\n",
			wantErr: "grid.timezone",
		},
		{
			name:    "bad reference date",
			content: "grid:\n  reference_date: yesterday\n",
			wantErr: "grid.reference_date",
		},
		{
			name:    "bad log level",
			content: "log:\n  level: loud\n",
			wantErr: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGridConfig_GetReferenceDate(t *testing.T) {
	now := time.Date(2024, 3, 18, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  GridConfig
		want string
	}{
		{
			name: "explicit date",
			cfg:  GridConfig{ReferenceDate: "2024-09-01", Timezone: "UTC"},
			want: "2024-09-01",
		},
		{
			name: "today in UTC",
			cfg:  GridConfig{Timezone: "UTC"},
			want: "2024-03-18",
		},
		{
			name: "today east of UTC is already tomorrow",
			cfg:  GridConfig{Timezone: "Asia/Tokyo"},
			want: "2024-03-19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.GetReferenceDate(now)
			if err != nil {
				t.Fatalf("GetReferenceDate() error = %v", err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("GetReferenceDate() = %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{FormatText, FormatJSON, FormatYAML} {
		if err := ValidateFormat(format); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", format, err)
		}
	}
	if err := ValidateFormat("csv"); err == nil {
		t.Error("ValidateFormat(csv) error = nil, want error")
	}
}
