package dna

import "fmt"

// WordSymbols is the number of hex symbols read for one gene word (32 bits).
const WordSymbols = 8

// Kind identifies how a gene word is interpreted.
type Kind uint8

const (
	KindScalar     Kind = iota // continuous value in [min, max)
	KindDiscrete               // integer value in [min, max)
	KindColor                  // RGB triple
	KindConnection             // brain connection descriptor
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindDiscrete:
		return "discrete"
	case KindColor:
		return "color"
	case KindConnection:
		return "connection"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a decoded gene. It is one of Scalar, Discrete, Color or Connection.
type Value interface {
	Kind() Kind
}

// Scalar is a decoded continuous gene.
type Scalar float64

// Discrete is a decoded integer gene.
type Discrete int

// Color is a decoded RGB gene.
type Color struct {
	R, G, B uint8
}

// Connection is a decoded brain connection gene.
type Connection struct {
	SourceClass uint8 // bit 31
	SourceType  uint8 // bits 26-30
	SinkClass   uint8 // bit 25
	SinkType    uint8 // bits 20-24
	Strength    float64
}

func (Scalar) Kind() Kind     { return KindScalar }
func (Discrete) Kind() Kind   { return KindDiscrete }
func (Color) Kind() Kind      { return KindColor }
func (Connection) Kind() Kind { return KindConnection }

const (
	wordRange     = 1 << 32
	strengthMask  = 1<<20 - 1
	typeFieldMask = 0x1f
)

// Gene is a view of one word of a genome together with its interpretation.
type Gene struct {
	Offset   int
	Kind     Kind
	Min, Max float64
}

// Decode interprets the gene word of g. Decoding is total: every word of a
// valid genome decodes to a value.
func (gn Gene) Decode(g Genome) Value {
	g.mustBeValid()
	if gn.Offset < 0 || gn.Offset+WordSymbols > Length {
		panic(fmt.Sprintf("dna: gene offset %d outside genome", gn.Offset))
	}
	return gn.decodeWord(g.word(gn.Offset))
}

func (gn Gene) decodeWord(v uint32) Value {
	switch gn.Kind {
	case KindScalar:
		scaled := float64(v) / wordRange
		return Scalar(scaled*(gn.Max-gn.Min) + gn.Min)
	case KindDiscrete:
		scaled := float64(v) / wordRange
		return Discrete(int(scaled*(gn.Max-gn.Min)) + int(gn.Min))
	case KindColor:
		return Color{
			R: uint8(v & 0xff),
			G: uint8(v >> 8 & 0xff),
			B: uint8(v >> 16 & 0xff),
		}
	case KindConnection:
		return Connection{
			SourceClass: uint8(v >> 31),
			SourceType:  uint8(v >> 26 & typeFieldMask),
			SinkClass:   uint8(v >> 25 & 1),
			SinkType:    uint8(v >> 20 & typeFieldMask),
			Strength:    float64(v&strengthMask)/strengthMask*(gn.Max-gn.Min) + gn.Min,
		}
	default:
		panic(fmt.Sprintf("dna: unknown gene kind %v", gn.Kind))
	}
}
