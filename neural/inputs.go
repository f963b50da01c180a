package neural

import (
	"fmt"
	"strings"
)

// InputSet holds one tick of sensory values. Every input is either a value
// or absent; absent is distinct from zero.
type InputSet struct {
	values  [NumInputTypes]float64
	present [NumInputTypes]bool
}

// Set records a value for an input.
func (s *InputSet) Set(t InputType, v float64) {
	s.values[t] = v
	s.present[t] = true
}

// Clear marks an input as absent.
func (s *InputSet) Clear(t InputType) {
	s.values[t] = 0
	s.present[t] = false
}

// Get returns the value of an input and whether it is present.
func (s InputSet) Get(t InputType) (float64, bool) {
	if int(t) >= NumInputTypes {
		return 0, false
	}
	return s.values[t], s.present[t]
}

// Empty reports whether no input is present.
func (s InputSet) Empty() bool {
	for _, p := range s.present {
		if p {
			return false
		}
	}
	return true
}

func (s InputSet) String() string {
	var b strings.Builder
	b.WriteString("inputs:")
	for t := InputType(0); t < NumInputTypes; t++ {
		if v, ok := s.Get(t); ok {
			fmt.Fprintf(&b, " %s=%.2f", t, v)
		} else {
			fmt.Fprintf(&b, " %s=-", t)
		}
	}
	return b.String()
}
