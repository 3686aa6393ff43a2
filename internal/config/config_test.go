package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.DB.Host != DefaultDBHost || cfg.DB.Port != DefaultDBPort {
		t.Errorf("unexpected DB defaults: %+v", cfg.DB)
	}
	if cfg.OperatorLogin != DefaultOperatorLogin {
		t.Errorf("expected operator login %s, got %s", DefaultOperatorLogin, cfg.OperatorLogin)
	}
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		db       DB
		expected string
	}{
		{
			name:     "defaults",
			db:       DB{Host: "127.0.0.1", Port: "3306", User: "root", Name: "test_management"},
			expected: "root:@tcp(127.0.0.1:3306)/test_management?parseTime=true",
		},
		{
			name:     "with password",
			db:       DB{Host: "db.internal", Port: "3307", User: "tmi", Password: "secret", Name: "results"},
			expected: "tmi:secret@tcp(db.internal:3307)/results?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DB: tt.db}
			if got := cfg.DSN(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestConfig_ServerDSN(t *testing.T) {
	cfg := &Config{DB: DB{Host: "127.0.0.1", Port: "3306", User: "root", Name: "ignored"}}
	got := cfg.ServerDSN()
	if got != "root:@tcp(127.0.0.1:3306)/" {
		t.Errorf("unexpected server DSN: %s", got)
	}
}

func TestConfig_LoadEnv(t *testing.T) {
	t.Setenv("DB_HOST", "10.0.0.5")
	t.Setenv("DB_DATABASE", "staging_results")
	t.Setenv("TMI_OPERATOR", "jenkins")

	cfg := New()
	cfg.LoadEnv()

	if cfg.DB.Host != "10.0.0.5" {
		t.Errorf("expected env host override, got %s", cfg.DB.Host)
	}
	if cfg.DB.Name != "staging_results" {
		t.Errorf("expected env database override, got %s", cfg.DB.Name)
	}
	if cfg.DB.Port != DefaultDBPort {
		t.Errorf("unset vars should keep defaults, got %s", cfg.DB.Port)
	}
	if cfg.OperatorLogin != "jenkins" {
		t.Errorf("expected operator override, got %s", cfg.OperatorLogin)
	}
}

func TestConfig_GetSummaryPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	path := cfg.GetSummaryPath()
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	if !strings.HasSuffix(path, filepath.Join(DefaultSummaryDir, DefaultSummaryFile)) {
		t.Errorf("unexpected summary path: %s", path)
	}
}
