// Package protocol holds the stateless verifier-side functions of the
// Chaum-Pedersen protocol: sampling a challenge scalar, recomputing the
// prover's commitments from its response, and deciding accept/reject
// in constant time with respect to the response. None of these
// functions touch the store; the service façade is what threads them
// through it.
package protocol

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"

	"github.com/google/uuid"

	"github.com/AINative-studio/ainative-code/internal/group"
)

// challengeBits is the width of the sampled challenge scalar c. The
// reference implementation samples a 64-bit unsigned integer and
// widens it rather than sampling directly in [0, q); this spec keeps
// that narrower sampling for bug-for-bug compatibility with the
// reference implementation rather than the stricter
// [0, q) sample a hardened implementation should use.
const challengeBits = 64

// SampleChallenge draws a cryptographically secure challenge scalar c.
// It samples uniformly from [0, 2^64) rather than [0, q), matching the
// documented reference behavior.
func SampleChallenge() (*big.Int, error) {
	max := new(big.Int).Lsh(big.NewInt(1), challengeBits)
	return rand.Int(rand.Reader, max)
}

// Verify recomputes (r1', r2') from (y1, y2, c, s) and reports whether
// they match the stored (r1, r2). Both equality checks are computed
// before the final decision is formed, and the decision itself is
// produced with subtle.ConstantTimeCompare rather than a short-
// circuiting boolean `&&`, so acceptance never leaks through an early
// exit on the first mismatched commitment.
func Verify(params *group.Params, y1, y2, r1, r2, c, s *big.Int) bool {
	r1Prime, r2Prime := params.RecomputeCommitments(y1, y2, c, s)

	r1Match := subtle.ConstantTimeCompare(canonicalPair(r1, r1Prime))
	r2Match := subtle.ConstantTimeCompare(canonicalPair(r2, r2Prime))

	return subtle.ConstantTimeEq(int32(r1Match&r2Match), 1) == 1
}

// canonicalPair encodes a and b as equal-width big-endian byte slices,
// wide enough to hold whichever of the two is larger — r1'/r2' are
// always < p, but r1/r2 arrive over the wire from the prover and must
// not be assumed to fit p's width, so the width is derived from the
// operands themselves rather than from the group modulus.
func canonicalPair(a, b *big.Int) (abuf, bbuf []byte) {
	width := (a.BitLen() + 7) / 8
	if bw := (b.BitLen() + 7) / 8; bw > width {
		width = bw
	}
	abuf = make([]byte, width)
	bbuf = make([]byte, width)
	a.FillBytes(abuf)
	b.FillBytes(bbuf)
	return abuf, bbuf
}

// NewAuthID mints a fresh, universally unique challenge identifier.
func NewAuthID() string {
	return uuid.NewString()
}

// NewSessionID mints a fresh, universally unique session identifier,
// minted only on successful verification.
func NewSessionID() string {
	return uuid.NewString()
}
