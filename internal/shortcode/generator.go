// Package shortcode produces the public redirect codes. Codes are guessed,
// not secret, so a seeded pseudo-random source is sufficient; the directory's
// uniqueness constraint remains the final arbiter on collisions.
package shortcode

import (
	"context"
	"errors"
	"math/rand/v2"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length of every issued code.
	Length = 8

	maxAttempts = 10
)

// ErrCodeSpaceExhausted is returned when every sampled candidate was already
// taken. With an 8-character code over 62 symbols this signals a systemic
// problem, not bad luck.
var ErrCodeSpaceExhausted = errors.New("short code space exhausted")

// TakenFunc answers whether a candidate code is already assigned.
type TakenFunc func(ctx context.Context, code string) (bool, error)

// Generator samples candidate codes and rejects ones the callback reports as
// taken.
type Generator struct {
	rng *rand.Rand
}

func New() *Generator {
	return &Generator{}
}

// NewSeeded returns a generator with a deterministic sequence, for tests.
func NewSeeded(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Generate returns a fresh code not reported taken. A nil taken callback skips
// rejection sampling entirely.
func (g *Generator) Generate(ctx context.Context, taken TakenFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := g.sample()
		if taken == nil {
			return code, nil
		}
		used, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !used {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (g *Generator) sample() string {
	buf := make([]byte, Length)
	for i := range buf {
		if g.rng != nil {
			buf[i] = alphabet[g.rng.IntN(len(alphabet))]
		} else {
			buf[i] = alphabet[rand.IntN(len(alphabet))]
		}
	}
	return string(buf)
}
