package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     42,
		WorldWidth:  1000,
		WorldHeight: 1000,
		IndexKind:   "quadtree",
		Tick:        1000,
		NextID:      17,
		Beasts: []BeastState{
			{
				ID:            3,
				Generation:    2,
				ParentA:       1,
				ParentB:       2,
				X:             150,
				Y:             250,
				Heading:       90,
				Energy:        42.5,
				ReproCooldown: 7,
				Genome:        strings.Repeat("ab", 64),
				Lifetime: &LifetimeStatsJSON{
					BirthTick: 100,
					Children:  2,
					FightsWon: 1,
				},
			},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_1000_population_crash.json" {
		t.Errorf("unexpected snapshot name %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Tick != 1000 || loaded.NextID != 17 || loaded.IndexKind != "quadtree" {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Beasts) != 1 {
		t.Fatalf("beasts = %d, want 1", len(loaded.Beasts))
	}
	b := loaded.Beasts[0]
	if b.ID != 3 || b.X != 150 || b.Heading != 90 || b.Energy != 42.5 || b.Genome != snapshot.Beasts[0].Genome {
		t.Errorf("beast mismatch: %+v", b)
	}
	if lt := b.Lifetime.FromJSON(); lt == nil || lt.Children != 2 || lt.FightsWon != 1 {
		t.Errorf("lifetime mismatch: %+v", b.Lifetime)
	}
}

func TestLoadSnapshotRejectsOtherVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}

func TestLifetimeJSONNil(t *testing.T) {
	var ls *LifetimeStats
	if ls.ToJSON() != nil {
		t.Error("nil stats should convert to nil")
	}
	var lsj *LifetimeStatsJSON
	if lsj.FromJSON() != nil {
		t.Error("nil JSON should convert to nil")
	}
}
