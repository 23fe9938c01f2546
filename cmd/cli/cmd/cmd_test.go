package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	if err := os.WriteFile(path, []byte("rate300: 170\nnds: 1.2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	overrides, err := collectOverrides(path, []string{"nds=1.12", " divider = 1.3 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]float64{"rate300": 170, "nds": 1.12, "divider": 1.3}
	for k, v := range expected {
		if overrides[k] != v {
			t.Errorf("Expected %s=%v, got %v", k, v, overrides[k])
		}
	}
}

func TestCollectOverridesInvalidPair(t *testing.T) {
	for _, pair := range []string{"nds", "nds=abc"} {
		if _, err := collectOverrides("", []string{pair}); err == nil {
			t.Errorf("Expected error for %q", pair)
		}
	}
}

func TestQuoteCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"quote",
		"--name", "Pump", "--price", "1000", "--currency", "KZT", "--weight", "10",
		"--length", "400", "--width", "300", "--height", "200", "--format", "json",
	})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	if !strings.Contains(out.String(), `"finalPrice": "38743.33"`) {
		t.Errorf("Expected final price 38743.33 in output:\n%s", out.String())
	}
}

func TestQuoteCommandRejectsInfiniteOverride(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"quote",
		"--name", "Pump", "--price", "1000", "--currency", "KZT", "--weight", "10",
		"--length", "400", "--width", "300", "--height", "200", "--set", "multiplier=inf",
	})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Expected error for infinite override")
	}
}
