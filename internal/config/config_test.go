package config

import (
	"os"
	"path/filepath"
	"testing"

	"landed-cost/core/types"
	"landed-cost/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Formula != types.DefaultFormulaParameters() {
		t.Errorf("Expected default formula parameters, got %+v", cfg.Formula)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("Expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadYAMLKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	src := `
formula:
  rate300: 170
server:
  addr: ":9090"
rates:
  static:
    USD: 500
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Formula.Rate300 != 170 {
		t.Errorf("Expected rate300 170, got %v", cfg.Formula.Rate300)
	}
	if cfg.Formula.Rate1000 != 143 {
		t.Errorf("Expected default rate1000, got %v", cfg.Formula.Rate1000)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Rates.Static["USD"] != 500 {
		t.Errorf("Expected USD 500, got %v", cfg.Rates.Static["USD"])
	}
}

func TestLoadStaticRatesReplaceDefaults(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{"yaml", "config.yaml", "rates:\n  static:\n    USD: 500\n"},
		{"json", "config.json", `{"rates": {"static": {"USD": 500}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.src), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cfg.Rates.Static) != 1 || cfg.Rates.Static["USD"] != 500 {
				t.Errorf("Expected only USD 500, got %v", cfg.Rates.Static)
			}
			if cfg.Rates.MarkupPercent != 1 {
				t.Errorf("Expected default markup, got %v", cfg.Rates.MarkupPercent)
			}
		})
	}
}

func TestLoadWithoutStaticRatesKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rates.Static["EUR"] != 612.74 || cfg.Rates.Static["RUB"] != 6.57 {
		t.Errorf("Expected default static rates, got %v", cfg.Rates.Static)
	}
}

func TestLoadYAMLRejectsInfiniteFormula(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("formula:\n  multiplier: .inf\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("Expected %s, got %v", errors.TypeConfig, err)
	}
}

func TestLoadJSONRejectsInvalidFormula(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"formula": {"nds": 0}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("Expected %s, got %v", errors.TypeConfig, err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Formula.NDS = 1.12

	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Formula.NDS != 1.12 {
		t.Errorf("Expected nds 1.12, got %v", loaded.Formula.NDS)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LANDED_COST_ADDR", ":7000")
	t.Setenv("LANDED_COST_REDIS_ADDR", "localhost:6379")
	t.Setenv("LANDED_COST_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Server.Addr != ":7000" || cfg.Rates.RedisAddr != "localhost:6379" || cfg.Logging.Level != "debug" {
		t.Errorf("environment not applied: %+v", cfg)
	}
}
