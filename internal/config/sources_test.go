package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	content := `sources:
  - name: policybazaar
    url: https://mirror.example.com/term-plans
  - name: insurancedekho
    disabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	pb := cfg.Get("policybazaar")
	if pb == nil || pb.URL != "https://mirror.example.com/term-plans" {
		t.Errorf("expected policybazaar override, got %+v", pb)
	}
	if dekho := cfg.Get("insurancedekho"); dekho == nil || !dekho.Disabled {
		t.Errorf("expected insurancedekho disabled, got %+v", dekho)
	}
	if cfg.Get("seed") != nil {
		t.Error("expected no override for seed")
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	cfg, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected missing file tolerated, got %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
	if cfg.Get("anything") != nil {
		t.Error("expected nil Get on nil config")
	}
}
