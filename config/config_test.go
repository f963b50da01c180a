package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/beasts/spatial"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Width != 1000 || cfg.World.Height != 1000 {
		t.Errorf("world = %dx%d, want 1000x1000", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Beast.DespawnTicks != 50 {
		t.Errorf("despawn_ticks = %d, want 50", cfg.Beast.DespawnTicks)
	}
	if cfg.Beast.MateRange != 100 || cfg.Beast.Speed != 5 {
		t.Errorf("mate_range/speed = %v/%v, want 100/5", cfg.Beast.MateRange, cfg.Beast.Speed)
	}
	if cfg.Reproduction.Range != 15 {
		t.Errorf("reproduction.range = %v, want 15", cfg.Reproduction.Range)
	}
	if cfg.Mutation.Rate != 0.00001 {
		t.Errorf("mutation.rate = %v, want 0.00001", cfg.Mutation.Rate)
	}
	if cfg.Derived.IndexKind != spatial.KindKDTree {
		t.Errorf("index kind = %q, want kdtree", cfg.Derived.IndexKind)
	}
	if cfg.Derived.WorldRect.Max != (spatial.Point{X: 1000, Y: 1000}) {
		t.Errorf("world rect = %v", cfg.Derived.WorldRect)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	overlay := "index:\n  kind: quadtree\nmutation:\n  rate: 0.01\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Derived.IndexKind != spatial.KindQuadTree {
		t.Errorf("index kind = %q, want quadtree", cfg.Derived.IndexKind)
	}
	if cfg.Mutation.Rate != 0.01 {
		t.Errorf("mutation.rate = %v, want overlay value 0.01", cfg.Mutation.Rate)
	}
	// Untouched sections keep their defaults.
	if cfg.Reproduction.Range != 15 {
		t.Errorf("reproduction.range = %v, want default 15", cfg.Reproduction.Range)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad kind", "index:\n  kind: rtree\n", "index.kind"},
		{"bad rate", "mutation:\n  rate: 2\n", "mutation.rate"},
		{"bad world", "world:\n  width: 0\n", "world"},
		{"bad yaml", "world: [\n", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Initial = 123
	cfg.Index.Kind = string(spatial.KindQuadTree)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Population.Initial != 123 || got.Derived.IndexKind != spatial.KindQuadTree {
		t.Errorf("reloaded config lost changes: initial=%d kind=%q",
			got.Population.Initial, got.Derived.IndexKind)
	}
}
