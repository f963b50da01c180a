package dna

import (
	"fmt"
	"sort"
)

// Trait names of the shared genome schema.
const (
	TraitBaseEnergy           = "base_energy"
	TraitEnergyConsumption    = "energy_consumption"
	TraitSize                 = "size"
	TraitColor                = "color"
	TraitReproductionCooldown = "reproduction_cooldown"
	TraitFertility            = "fertility"
	TraitConnection1          = "neuron_connection_1"
	TraitConnection2          = "neuron_connection_2"
	TraitConnection3          = "neuron_connection_3"
	TraitConnection4          = "neuron_connection_4"
)

// ConnectionTraits lists the brain connection genes in build order.
var ConnectionTraits = []string{
	TraitConnection1,
	TraitConnection2,
	TraitConnection3,
	TraitConnection4,
}

// schema is the genome layout shared by every beast. Offsets are symbol
// positions. Changing any entry breaks compatibility with recorded genomes;
// the overlap between connections 3 and 4 is part of the format.
var schema = map[string]Gene{
	TraitBaseEnergy:           {Offset: 0, Kind: KindDiscrete, Min: 100, Max: 750},
	TraitEnergyConsumption:    {Offset: 8, Kind: KindScalar, Min: 0.5, Max: 1.5},
	TraitSize:                 {Offset: 16, Kind: KindDiscrete, Min: 3, Max: 10},
	TraitColor:                {Offset: 24, Kind: KindColor},
	TraitReproductionCooldown: {Offset: 32, Kind: KindDiscrete, Min: 50, Max: 150},
	TraitFertility:            {Offset: 40, Kind: KindDiscrete, Min: 0, Max: 10},
	TraitConnection1:          {Offset: 48, Kind: KindConnection, Min: -1, Max: 1},
	TraitConnection2:          {Offset: 56, Kind: KindConnection, Min: -1, Max: 1},
	TraitConnection3:          {Offset: 64, Kind: KindConnection, Min: -1, Max: 1},
	TraitConnection4:          {Offset: 70, Kind: KindConnection, Min: -1, Max: 1},
}

// Lookup returns the schema entry for a trait.
func Lookup(trait string) (Gene, bool) {
	gn, ok := schema[trait]
	return gn, ok
}

// Traits returns all trait names in offset order.
func Traits() []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oj := schema[names[i]].Offset, schema[names[j]].Offset
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	return names
}

// Decode decodes the named trait from g. Unknown trait names are a
// programming error and panic.
func Decode(g Genome, trait string) Value {
	gn, ok := schema[trait]
	if !ok {
		panic(fmt.Sprintf("dna: unknown trait %q", trait))
	}
	return gn.Decode(g)
}

// DecodeScalar decodes a continuous trait.
func DecodeScalar(g Genome, trait string) float64 {
	return float64(decodeAs[Scalar](g, trait))
}

// DecodeDiscrete decodes an integer trait.
func DecodeDiscrete(g Genome, trait string) int {
	return int(decodeAs[Discrete](g, trait))
}

// DecodeColor decodes an RGB trait.
func DecodeColor(g Genome, trait string) Color {
	return decodeAs[Color](g, trait)
}

// DecodeConnection decodes a brain connection trait.
func DecodeConnection(g Genome, trait string) Connection {
	return decodeAs[Connection](g, trait)
}

func decodeAs[T Value](g Genome, trait string) T {
	v := Decode(g, trait)
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("dna: trait %q is a %v gene", trait, v.Kind()))
	}
	return t
}
