package group

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultGenerationAttempts is the retry bound for Generate before it
// gives up with ErrGenerationExhausted.
const DefaultGenerationAttempts = 50

// primeBits is the bit length of the probable prime p sampled by
// Generate. 1024 bits keeps the Sophie-Germain search fast enough for
// an offline CLI while remaining a realistic modulus size.
const primeBits = 1024

// fixedGenerators are the small generators pinned after a valid p is
// found. The source documents this as a deliberate simplification —
// a hardened implementation would randomize g and derive h = g^t mod p
// for a secret t instead of reusing fixed small values.
var (
	fixedG = big.NewInt(5)
	fixedH = big.NewInt(7)
)

// ErrGenerationExhausted is returned by Generate when no Sophie-Germain
// prime was found within the configured attempt budget.
type ErrGenerationExhausted struct {
	Attempts int
}

func (e *ErrGenerationExhausted) Error() string {
	return fmt.Sprintf("group: could not generate a valid prime after %d attempts", e.Attempts)
}

// Generate samples a random probable prime p of primeBits bits and
// checks that q = (p-1)/2 is also prime via the subgroup-order test
// (IsPrimeOrderSubgroup using the witnesses g=2, h=3), retrying up to
// maxAttempts times. A candidate for which the fixed generators g=5,
// h=7 fail the same test is also skipped. On success it returns Params
// using those fixed generators.
func Generate(maxAttempts int) (*Params, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultGenerationAttempts
	}

	two := big.NewInt(2)
	three := big.NewInt(3)
	one := big.NewInt(1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p, err := rand.Prime(rand.Reader, primeBits)
		if err != nil {
			return nil, fmt.Errorf("group: sampling candidate prime: %w", err)
		}

		q := new(big.Int).Sub(p, one)
		q.Div(q, two)

		if !q.ProbablyPrime(20) {
			continue
		}

		if !IsPrimeOrderSubgroup(p, q, two, three) {
			continue
		}

		if !IsPrimeOrderSubgroup(p, q, fixedG, fixedH) {
			continue
		}

		return &Params{P: p, Q: q, G: new(big.Int).Set(fixedG), H: new(big.Int).Set(fixedH)}, nil
	}

	return nil, &ErrGenerationExhausted{Attempts: maxAttempts}
}
