package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete simulation state for resuming a run.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldWidth  int    `json:"world_width"`
	WorldHeight int    `json:"world_height"`
	IndexKind   string `json:"index_kind"`

	Tick   int32  `json:"tick"`
	NextID uint32 `json:"next_id"`

	Beasts []BeastState `json:"beasts"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// BeastState holds one beast's complete state. Traits and brain are
// rebuilt from the genome.
type BeastState struct {
	ID         uint32 `json:"id"`
	Generation int    `json:"generation"`
	ParentA    uint32 `json:"parent_a,omitempty"`
	ParentB    uint32 `json:"parent_b,omitempty"`
	BirthTick  int32  `json:"birth_tick"`

	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Heading float32 `json:"heading"`

	Energy        float64 `json:"energy"`
	ReproCooldown int     `json:"repro_cooldown"`
	FightCooldown int     `json:"fight_cooldown"`
	DeadTicks     int     `json:"dead_ticks"`

	Genome string `json:"genome"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthTick     int32   `json:"birth_tick"`
	SurvivalTicks int32   `json:"survival_ticks"`
	Generation    int     `json:"generation"`
	Children      int     `json:"children"`
	FightsWon     int     `json:"fights_won"`
	FightsLost    int     `json:"fights_lost"`
	PeakEnergy    float64 `json:"peak_energy"`
	Distance      float64 `json:"distance"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthTick:     ls.BirthTick,
		SurvivalTicks: ls.SurvivalTicks,
		Generation:    ls.Generation,
		Children:      ls.Children,
		FightsWon:     ls.FightsWon,
		FightsLost:    ls.FightsLost,
		PeakEnergy:    ls.PeakEnergy,
		Distance:      ls.Distance,
	}
}

// FromJSON converts the JSON form back to LifetimeStats.
func (lsj *LifetimeStatsJSON) FromJSON() *LifetimeStats {
	if lsj == nil {
		return nil
	}
	return &LifetimeStats{
		BirthTick:     lsj.BirthTick,
		SurvivalTicks: lsj.SurvivalTicks,
		Generation:    lsj.Generation,
		Children:      lsj.Children,
		FightsWon:     lsj.FightsWon,
		FightsLost:    lsj.FightsLost,
		PeakEnergy:    lsj.PeakEnergy,
		Distance:      lsj.Distance,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
