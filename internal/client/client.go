package client

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net"
	"net/rpc"
	"time"

	"github.com/AINative-studio/ainative-code/internal/errors"
	"github.com/AINative-studio/ainative-code/internal/group"
	"github.com/AINative-studio/ainative-code/internal/logger"
	"github.com/AINative-studio/ainative-code/internal/transport"
)

// Driver is the authentication client: it dials a service.Service over
// net/rpc and drives the three-phase authentication flow.
type Driver struct {
	addr        string
	params      *group.Params
	dialTimeout time.Duration
	maxRetries  int

	rpcClient *rpc.Client
}

// New creates a Driver for the server at addr, running the protocol
// over params. Dial is not performed until Connect is called.
func New(addr string, params *group.Params, opts ...Option) *Driver {
	d := &Driver{
		addr:        addr,
		params:      params,
		dialTimeout: 5 * time.Second,
		maxRetries:  3,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Connect dials the server, retrying with exponential backoff up to
// maxRetries times before giving up.
func (d *Driver) Connect() error {
	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			logger.DebugWithFields("retrying dial after backoff", map[string]interface{}{
				"attempt": attempt, "backoff": backoff.String(),
			})
			time.Sleep(backoff)
		}

		conn, err := net.DialTimeout("tcp", d.addr, d.dialTimeout)
		if err == nil {
			d.rpcClient = rpc.NewClient(conn)
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("connect: dialing %s: %w", d.addr, lastErr)
}

// Close releases the underlying connection.
func (d *Driver) Close() error {
	if d.rpcClient == nil {
		return nil
	}
	return d.rpcClient.Close()
}

// Register runs the Register call for user, whose secret is
// x: it computes (y1, y2) = y1_y2(x) and submits them.
func (d *Driver) Register(user string, x *big.Int) error {
	y1, y2 := d.params.Y1Y2(x)

	args := &transport.RegisterArgs{
		User: user,
		Y1:   transport.EncodeScalar(y1),
		Y2:   transport.EncodeScalar(y2),
	}
	var reply transport.RegisterReply
	if err := d.rpcClient.Call(transport.ServiceName+".Register", args, &reply); err != nil {
		return fmt.Errorf("register: %w", errors.ParseWireError(err))
	}
	return nil
}

// Authenticate runs the full challenge/answer flow for
// user, proving knowledge of secret x, and returns the resulting
// session_id.
func (d *Driver) Authenticate(user string, x *big.Int) (string, error) {
	k, err := rand.Int(rand.Reader, d.params.Q)
	if err != nil {
		return "", fmt.Errorf("authenticate: sampling k: %w", err)
	}
	r1, r2 := d.params.R1R2(k)

	challengeArgs := &transport.ChallengeArgs{
		User: user,
		R1:   transport.EncodeScalar(r1),
		R2:   transport.EncodeScalar(r2),
	}
	var challengeReply transport.ChallengeReply
	if err := d.rpcClient.Call(transport.ServiceName+".CreateAuthenticationChallenge", challengeArgs, &challengeReply); err != nil {
		return "", fmt.Errorf("create_authentication_challenge: %w", errors.ParseWireError(err))
	}

	c := transport.DecodeScalar(challengeReply.C)
	s := d.params.S(k, c, x)

	answerArgs := &transport.AnswerArgs{
		AuthID: challengeReply.AuthID,
		S:      transport.EncodeScalar(s),
	}
	var answerReply transport.AnswerReply
	if err := d.rpcClient.Call(transport.ServiceName+".VerifyAuthentication", answerArgs, &answerReply); err != nil {
		return "", fmt.Errorf("verify_authentication: %w", errors.ParseWireError(err))
	}

	return answerReply.SessionID, nil
}
