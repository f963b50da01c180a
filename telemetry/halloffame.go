package telemetry

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/dna"
)

// HallEntry is a successful beast's genome and fitness.
type HallEntry struct {
	Genome     dna.Genome
	Fitness    float64
	EntityID   uint32
	Generation int
	Children   int
	FightsWon  int
	Survival   int32 // ticks
}

// HallOfFame stores proven genomes for reseeding when the population
// crashes. Entries are kept sorted by descending fitness.
type HallOfFame struct {
	entries []HallEntry
	cfg     config.HallOfFameConfig
	rng     *rand.Rand
}

// NewHallOfFame creates an empty hall holding at most cfg.Size entries.
func NewHallOfFame(cfg config.HallOfFameConfig, rng *rand.Rand) *HallOfFame {
	return &HallOfFame{
		entries: make([]HallEntry, 0, max(cfg.Size, 0)),
		cfg:     cfg,
		rng:     rng,
	}
}

// Consider evaluates a dead beast for entry. Returns true if it was added.
func (hof *HallOfFame) Consider(g dna.Genome, stats *LifetimeStats, entityID uint32) bool {
	if stats == nil || g.IsZero() || !hof.meetsEntryCriteria(stats) {
		return false
	}

	entry := HallEntry{
		Genome:     g,
		Fitness:    hof.fitness(stats),
		EntityID:   entityID,
		Generation: stats.Generation,
		Children:   stats.Children,
		FightsWon:  stats.FightsWon,
		Survival:   stats.SurvivalTicks,
	}
	var added bool
	hof.entries, added = hof.insertEntry(hof.entries, entry)
	return added
}

// meetsEntryCriteria: reproduced, or survived long enough.
func (hof *HallOfFame) meetsEntryCriteria(stats *LifetimeStats) bool {
	if stats.Children >= hof.cfg.Entry.MinChildren && hof.cfg.Entry.MinChildren > 0 {
		return true
	}
	return stats.SurvivalTicks >= int32(hof.cfg.Entry.MinSurvivalTicks)
}

func (hof *HallOfFame) fitness(stats *LifetimeStats) float64 {
	w := hof.cfg.Fitness
	return float64(stats.Children)*w.ChildrenWeight +
		float64(stats.SurvivalTicks)*w.SurvivalWeight +
		float64(stats.FightsWon)*w.FightsWeight
}

// insertEntry adds an entry, maintaining descending fitness order.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	if hof.cfg.Size <= 0 {
		return hall, false
	}

	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.cfg.Size && idx >= hof.cfg.Size {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.cfg.Size {
		hall = hall[:hof.cfg.Size]
	}
	return hall, true
}

// Sample selects a genome using tournament selection. ok is false if the
// hall is empty.
func (hof *HallOfFame) Sample() (g dna.Genome, ok bool) {
	if len(hof.entries) == 0 {
		return dna.Genome{}, false
	}

	// Tournament selection with k=3
	const tournamentSize = 3
	var best *HallEntry
	for i := 0; i < tournamentSize && i < len(hof.entries); i++ {
		candidate := &hof.entries[hof.rng.Intn(len(hof.entries))]
		if best == nil || candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best.Genome, true
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// TopFitness returns the highest fitness, or 0 if the hall is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// Entries returns a copy of the entries, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return append([]HallEntry(nil), hof.entries...)
}

// hallEntryJSON is the JSON-serializable representation of a hall entry.
type hallEntryJSON struct {
	EntityID   uint32  `json:"entity_id"`
	Fitness    float64 `json:"fitness"`
	Generation int     `json:"generation"`
	Children   int     `json:"children"`
	FightsWon  int     `json:"fights_won"`
	Survival   int32   `json:"survival_ticks"`
	Genome     string  `json:"genome"`
}

// MarshalJSON serializes the hall as a list, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := make([]hallEntryJSON, len(hof.entries))
	for i, e := range hof.entries {
		export[i] = hallEntryJSON{
			EntityID:   e.EntityID,
			Fitness:    e.Fitness,
			Generation: e.Generation,
			Children:   e.Children,
			FightsWon:  e.FightsWon,
			Survival:   e.Survival,
			Genome:     e.Genome.String(),
		}
	}
	return json.MarshalIndent(export, "", "  ")
}

// LoadHallOfFameFromFile reads a hall written by MarshalJSON. Entries
// beyond cfg.Size are dropped, lowest fitness first.
func LoadHallOfFameFromFile(path string, cfg config.HallOfFameConfig, rng *rand.Rand) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw []hallEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(cfg, rng)
	for i, ej := range raw {
		g, err := dna.Parse(ej.Genome)
		if err != nil {
			return nil, fmt.Errorf("hall of fame entry %d: %w", i, err)
		}
		hof.entries, _ = hof.insertEntry(hof.entries, HallEntry{
			Genome:     g,
			Fitness:    ej.Fitness,
			EntityID:   ej.EntityID,
			Generation: ej.Generation,
			Children:   ej.Children,
			FightsWon:  ej.FightsWon,
			Survival:   ej.Survival,
		})
	}
	return hof, nil
}
