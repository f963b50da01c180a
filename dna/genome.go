// Package dna provides the fixed-length hex genome carried by every beast,
// its crossover and mutation operators, and the codec that decodes trait
// values from it.
package dna

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Length is the number of hex symbols in every genome.
const Length = 128

const hexDigits = "0123456789abcdef"

var (
	// ErrLength is returned when a genome string has the wrong number of symbols.
	ErrLength = errors.New("dna: wrong genome length")
	// ErrSymbol is returned when a genome string contains a non-hex symbol.
	ErrSymbol = errors.New("dna: invalid genome symbol")
)

// Genome is an immutable sequence of Length lowercase hex symbols.
// The zero value is not a valid genome; use Random, Parse or Crossover.
type Genome struct {
	symbols string
}

// Parse validates s and returns it as a Genome. Upper-case hex digits are
// accepted and normalised to lower case.
func Parse(s string) (Genome, error) {
	if len(s) != Length {
		return Genome{}, fmt.Errorf("%w: got %d symbols, want %d", ErrLength, len(s), Length)
	}
	s = strings.ToLower(s)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(hexDigits, s[i]) < 0 {
			return Genome{}, fmt.Errorf("%w: %q at position %d", ErrSymbol, s[i], i)
		}
	}
	return Genome{symbols: s}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Genome {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Random returns a genome with every symbol drawn uniformly.
func Random(rng *rand.Rand) Genome {
	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = hexDigits[rng.Intn(16)]
	}
	return Genome{symbols: string(buf)}
}

// Crossover builds a child genome by choosing, independently for every
// position, the symbol of a or b with equal probability.
func Crossover(rng *rand.Rand, a, b Genome) Genome {
	a.mustBeValid()
	b.mustBeValid()

	buf := make([]byte, Length)
	for i := range buf {
		if rng.Intn(2) == 0 {
			buf[i] = a.symbols[i]
		} else {
			buf[i] = b.symbols[i]
		}
	}
	return Genome{symbols: string(buf)}
}

// Mutate returns a copy of g where every symbol is, with probability rate,
// replaced by a uniformly drawn hex digit. The replacement may equal the
// original symbol. g itself is never modified, so parents stay intact when
// a child genome is mutated.
func (g Genome) Mutate(rng *rand.Rand, rate float64) Genome {
	g.mustBeValid()
	if rate <= 0 {
		return g
	}

	var buf []byte
	for i := 0; i < Length; i++ {
		if rng.Float64() >= rate {
			continue
		}
		if buf == nil {
			buf = []byte(g.symbols)
		}
		buf[i] = hexDigits[rng.Intn(16)]
	}
	if buf == nil {
		return g
	}
	return Genome{symbols: string(buf)}
}

// String returns the hex representation of the genome.
func (g Genome) String() string {
	return g.symbols
}

// Len returns the number of symbols in the genome.
func (g Genome) Len() int {
	return len(g.symbols)
}

// IsZero reports whether g is the zero Genome.
func (g Genome) IsZero() bool {
	return g.symbols == ""
}

// word reads the 32-bit word made of the 8 symbols starting at offset.
func (g Genome) word(offset int) uint32 {
	var v uint32
	for i := offset; i < offset+WordSymbols; i++ {
		v = v<<4 | uint32(nibble(g.symbols[i]))
	}
	return v
}

func (g Genome) mustBeValid() {
	if len(g.symbols) != Length {
		panic(fmt.Sprintf("dna: genome has %d symbols, want %d", len(g.symbols), Length))
	}
}

func nibble(c byte) byte {
	if c <= '9' {
		return c - '0'
	}
	return c - 'a' + 10
}
