// Package transport defines the wire envelopes exchanged between the
// client driver and the service façade, and the net/rpc-based codec
// that carries them — the standard library's gob-encoded, length-
// framed RPC, chosen as the one ambient component this module builds
// on the standard library rather than an ecosystem dependency (see
// DESIGN.md).
package transport

import "math/big"

// ServiceName is the net/rpc receiver name the server registers the
// façade under, and the prefix every method is dialed through
// (ServiceName + "." + method, per net/rpc convention).
const ServiceName = "AuthService"

// RegisterArgs is the wire form of a RegisterRequest.
type RegisterArgs struct {
	User string
	Y1   []byte
	Y2   []byte
}

// RegisterReply carries no fields on success; its presence marks the
// call as having completed.
type RegisterReply struct{}

// ChallengeArgs is the wire form of AuthenticationChallengeRequest.
type ChallengeArgs struct {
	User string
	R1   []byte
	R2   []byte
}

// ChallengeReply is the wire form of AuthenticationChallengeResponse.
type ChallengeReply struct {
	AuthID string
	C      []byte
}

// AnswerArgs is the wire form of AuthenticationAnswerRequest.
type AnswerArgs struct {
	AuthID string
	S      []byte
}

// AnswerReply is the wire form of AuthenticationAnswerResponse.
type AnswerReply struct {
	SessionID string
}

// EncodeScalar renders v as an unpadded big-endian byte string, per
// the wire. A nil or zero-valued v encodes as an empty slice.
func EncodeScalar(v *big.Int) []byte {
	if v == nil || v.Sign() == 0 {
		return nil
	}
	return v.Bytes()
}

// DecodeScalar parses an unpadded big-endian byte string into a
// scalar. A nil or empty slice decodes as the scalar 0.
func DecodeScalar(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
