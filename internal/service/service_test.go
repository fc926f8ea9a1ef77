package service

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AINative-studio/ainative-code/internal/errors"
	"github.com/AINative-studio/ainative-code/internal/group"
	"github.com/AINative-studio/ainative-code/internal/transport"
)

func testParams() *group.Params {
	return group.New(big.NewInt(10009), big.NewInt(5004), big.NewInt(2), big.NewInt(3))
}

func bi(v int64) *big.Int { return big.NewInt(v) }

// TestFullFlow_E1 exercises the documented x=3,k=4,c=2 worked example end to end
// through the service façade, bypassing the wire encoding by calling
// the RPC methods directly.
func TestFullFlow_E1(t *testing.T) {
	svc := New(testParams())

	var registerReply transport.RegisterReply
	err := svc.Register(&transport.RegisterArgs{
		User: "u",
		Y1:   transport.EncodeScalar(bi(8)),
		Y2:   transport.EncodeScalar(bi(27)),
	}, &registerReply)
	require.NoError(t, err)

	var challengeReply transport.ChallengeReply
	err = svc.CreateAuthenticationChallenge(&transport.ChallengeArgs{
		User: "u",
		R1:   transport.EncodeScalar(bi(16)),
		R2:   transport.EncodeScalar(bi(81)),
	}, &challengeReply)
	require.NoError(t, err)
	assert.NotEmpty(t, challengeReply.AuthID)

	// Force the documented challenge c=2 for the worked example,
	// rather than depending on the randomly sampled value.
	challenge := svc.store.GetChallenge(challengeReply.AuthID)
	require.NotNil(t, challenge)
	challenge.C = bi(2)

	var answerReply transport.AnswerReply
	err = svc.VerifyAuthentication(&transport.AnswerArgs{
		AuthID: challengeReply.AuthID,
		S:      transport.EncodeScalar(bi(5002)),
	}, &answerReply)
	require.NoError(t, err)
	assert.NotEmpty(t, answerReply.SessionID)
}

// TestFullFlow_E2 mirrors E1 but submits the wrong s and expects
// FailedPrecondition, and the challenge must remain reusable after.
func TestFullFlow_E2(t *testing.T) {
	svc := New(testParams())

	var registerReply transport.RegisterReply
	require.NoError(t, svc.Register(&transport.RegisterArgs{
		User: "u",
		Y1:   transport.EncodeScalar(bi(8)),
		Y2:   transport.EncodeScalar(bi(27)),
	}, &registerReply))

	var challengeReply transport.ChallengeReply
	require.NoError(t, svc.CreateAuthenticationChallenge(&transport.ChallengeArgs{
		User: "u",
		R1:   transport.EncodeScalar(bi(16)),
		R2:   transport.EncodeScalar(bi(81)),
	}, &challengeReply))

	challenge := svc.store.GetChallenge(challengeReply.AuthID)
	challenge.C = bi(2)

	var answerReply transport.AnswerReply
	err := svc.VerifyAuthentication(&transport.AnswerArgs{
		AuthID: challengeReply.AuthID,
		S:      transport.EncodeScalar(bi(5001)),
	}, &answerReply)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.FailedPrecondition, code)
	assert.Empty(t, answerReply.SessionID)

	// The same auth_id still accepts the correct answer afterwards.
	require.NoError(t, svc.VerifyAuthentication(&transport.AnswerArgs{
		AuthID: challengeReply.AuthID,
		S:      transport.EncodeScalar(bi(5002)),
	}, &answerReply))
	assert.NotEmpty(t, answerReply.SessionID)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := New(testParams())
	var reply transport.RegisterReply
	args := &transport.RegisterArgs{User: "u", Y1: transport.EncodeScalar(bi(8)), Y2: transport.EncodeScalar(bi(27))}

	require.NoError(t, svc.Register(args, &reply))

	err := svc.Register(args, &reply)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.AlreadyExists, code)
}

func TestRegister_EmptyUser(t *testing.T) {
	svc := New(testParams())
	var reply transport.RegisterReply
	err := svc.Register(&transport.RegisterArgs{User: ""}, &reply)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.InvalidArgument, code)
}

func TestCreateAuthenticationChallenge_UnknownUser(t *testing.T) {
	svc := New(testParams())
	var reply transport.ChallengeReply
	err := svc.CreateAuthenticationChallenge(&transport.ChallengeArgs{User: "ghost"}, &reply)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.NotFound, code)
}

func TestVerifyAuthentication_UnknownChallenge(t *testing.T) {
	svc := New(testParams())
	var reply transport.AnswerReply
	err := svc.VerifyAuthentication(&transport.AnswerArgs{AuthID: "ghost", S: transport.EncodeScalar(bi(1))}, &reply)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.NotFound, code)
}

func TestVerifyAuthentication_AlreadyUsed(t *testing.T) {
	svc := New(testParams())

	var registerReply transport.RegisterReply
	require.NoError(t, svc.Register(&transport.RegisterArgs{
		User: "u",
		Y1:   transport.EncodeScalar(bi(8)),
		Y2:   transport.EncodeScalar(bi(27)),
	}, &registerReply))

	var challengeReply transport.ChallengeReply
	require.NoError(t, svc.CreateAuthenticationChallenge(&transport.ChallengeArgs{
		User: "u",
		R1:   transport.EncodeScalar(bi(16)),
		R2:   transport.EncodeScalar(bi(81)),
	}, &challengeReply))

	challenge := svc.store.GetChallenge(challengeReply.AuthID)
	challenge.C = bi(2)

	var answerReply transport.AnswerReply
	require.NoError(t, svc.VerifyAuthentication(&transport.AnswerArgs{
		AuthID: challengeReply.AuthID,
		S:      transport.EncodeScalar(bi(5002)),
	}, &answerReply))

	err := svc.VerifyAuthentication(&transport.AnswerArgs{
		AuthID: challengeReply.AuthID,
		S:      transport.EncodeScalar(bi(5002)),
	}, &answerReply)
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.AlreadyUsed, code)
}
