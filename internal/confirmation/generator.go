package confirmation

import (
	"math/rand/v2"
	"strings"
)

const (
	Prefix = "CYP-"
	// Alphabet leaves out 0/O and 1/I.
	Alphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	CodeLength = 6
)

// Generator produces human-readable booking codes. Codes are not checked for
// uniqueness.
type Generator struct {
	intN func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{intN: rand.IntN}
}

// NewSeededGenerator draws from r, for reproducible codes.
func NewSeededGenerator(r *rand.Rand) *Generator {
	return &Generator{intN: r.IntN}
}

func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(len(Prefix) + CodeLength)
	b.WriteString(Prefix)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(Alphabet[g.intN(len(Alphabet))])
	}
	return b.String()
}
