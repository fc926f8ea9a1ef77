// Package group implements the number-theoretic parameter model and
// modular arithmetic used by the Chaum-Pedersen proof: a Sophie-Germain
// prime group (p, q, g, h) and the commitment/response operations the
// prover and verifier share.
package group

import (
	"fmt"
	"math/big"
)

// Params is the immutable quadruple (p, q, g, h) defining the group
// the protocol runs over. p is prime, q = (p-1)/2 is prime, and g, h
// generate the unique subgroup of order q.
type Params struct {
	P *big.Int
	Q *big.Int
	G *big.Int
	H *big.Int
}

// New builds a Params from the given scalars. It does not validate the
// subgroup property — callers that load parameters from configuration
// should call Validate before trusting them.
func New(p, q, g, h *big.Int) *Params {
	return &Params{P: p, Q: q, G: g, H: h}
}

// Validate checks g^q = h^q = 1 (mod p) (via IsPrimeOrderSubgroup) and
// that g, h lie outside {0, 1}. It does not check that p or q is prime
// or that p = 2q+1.
func (params *Params) Validate() error {
	zero := big.NewInt(0)
	one := big.NewInt(1)

	if params.G.Cmp(zero) == 0 || params.G.Cmp(one) == 0 {
		return fmt.Errorf("group: g must not be 0 or 1")
	}
	if params.H.Cmp(zero) == 0 || params.H.Cmp(one) == 0 {
		return fmt.Errorf("group: h must not be 0 or 1")
	}
	if !IsPrimeOrderSubgroup(params.P, params.Q, params.G, params.H) {
		return fmt.Errorf("group: p does not define a prime-order subgroup with generators g, h")
	}
	return nil
}

// IsPrimeOrderSubgroup reports whether g and h both have order dividing
// q within (Z/pZ)*, i.e. g^q = h^q = 1 (mod p). This is the subgroup-
// order test used both for validating configured parameters and for
// the offline generator's witness test.
func IsPrimeOrderSubgroup(p, q, g, h *big.Int) bool {
	one := big.NewInt(1)
	return new(big.Int).Exp(g, q, p).Cmp(one) == 0 &&
		new(big.Int).Exp(h, q, p).Cmp(one) == 0
}

// Y1Y2 computes the public commitments (g^x mod p, h^x mod p) bound to
// secret x. Used at registration time.
func (params *Params) Y1Y2(x *big.Int) (y1, y2 *big.Int) {
	y1 = new(big.Int).Exp(params.G, x, params.P)
	y2 = new(big.Int).Exp(params.H, x, params.P)
	return y1, y2
}

// R1R2 computes the prover's commitments (g^k mod p, h^k mod p) bound
// to the random nonce k. Identical contract to Y1Y2.
func (params *Params) R1R2(k *big.Int) (r1, r2 *big.Int) {
	r1 = new(big.Int).Exp(params.G, k, params.P)
	r2 = new(big.Int).Exp(params.H, k, params.P)
	return r1, r2
}

// S computes the prover's response s = (k - c*x) mod q, canonicalized
// to the nonnegative residue in [0, q). Mirrors the reference rule: if
// k > c*x the subtraction is taken directly mod q, otherwise the
// complement of (c*x - k) mod q is returned, reduced mod q so that a
// zero residue yields 0 rather than q.
func (params *Params) S(k, c, x *big.Int) *big.Int {
	cx := new(big.Int).Mul(c, x)

	if k.Cmp(cx) > 0 {
		diff := new(big.Int).Sub(k, cx)
		return diff.Mod(diff, params.Q)
	}

	diff := new(big.Int).Sub(cx, k)
	diff.Mod(diff, params.Q)
	diff.Sub(params.Q, diff)
	return diff.Mod(diff, params.Q)
}

// VerifyCommitments recomputes r1' = g^s * y1^c mod p and
// r2' = h^s * y2^c mod p and reports whether they match the supplied
// (r1, r2). Both products are computed unconditionally before any
// comparison; callers that need constant-time acceptance should use
// protocol.Verify rather than branching directly on this result.
func (params *Params) VerifyCommitments(y1, y2, r1, r2, c, s *big.Int) bool {
	r1Prime, r2Prime := params.RecomputeCommitments(y1, y2, c, s)
	return r1.Cmp(r1Prime) == 0 && r2.Cmp(r2Prime) == 0
}

// RecomputeCommitments computes (g^s * y1^c mod p, h^s * y2^c mod p)
// without comparing them to anything, so callers can control how the
// comparison is performed (e.g. constant-time).
func (params *Params) RecomputeCommitments(y1, y2, c, s *big.Int) (r1Prime, r2Prime *big.Int) {
	gs := new(big.Int).Exp(params.G, s, params.P)
	y1c := new(big.Int).Exp(y1, c, params.P)
	r1Prime = new(big.Int).Mod(new(big.Int).Mul(gs, y1c), params.P)

	hs := new(big.Int).Exp(params.H, s, params.P)
	y2c := new(big.Int).Exp(y2, c, params.P)
	r2Prime = new(big.Int).Mod(new(big.Int).Mul(hs, y2c), params.P)

	return r1Prime, r2Prime
}

// String renders the parameters in the KEY=value form used by the
// parameter file and by config.Save.
func (params *Params) String() string {
	return fmt.Sprintf("CP_P=%s\nCP_Q=%s\nCP_G=%s\nCP_H=%s", params.P, params.Q, params.G, params.H)
}
