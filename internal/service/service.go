// Package service implements the authentication façade: the three
// net/rpc-exposed methods (Register, CreateAuthenticationChallenge,
// VerifyAuthentication) that thread the group parameters, the
// protocol engine, and the store together.
package service

import (
	"net/rpc"

	"github.com/AINative-studio/ainative-code/internal/errors"
	"github.com/AINative-studio/ainative-code/internal/group"
	"github.com/AINative-studio/ainative-code/internal/logger"
	"github.com/AINative-studio/ainative-code/internal/protocol"
	"github.com/AINative-studio/ainative-code/internal/store"
	"github.com/AINative-studio/ainative-code/internal/transport"
)

// Service is the net/rpc receiver bound under transport.ServiceName.
// One Service value is registered per server process; it holds no
// per-call state of its own, only the shared group parameters and
// Store.
type Service struct {
	params *group.Params
	store  *store.Store
}

// New returns a Service bound to params and an empty Store.
func New(params *group.Params) *Service {
	return &Service{params: params, store: store.New()}
}

// Register implements the Register call: it rejects a
// user_id already present with errors.AlreadyExists, otherwise stores
// (user, y1, y2) and returns successfully.
func (s *Service) Register(args *transport.RegisterArgs, reply *transport.RegisterReply) error {
	if args.User == "" {
		return errors.New(errors.InvalidArgument, "user must not be empty")
	}

	if s.store.ContainsUser(args.User) {
		logger.WarnWithFields("register rejected: user already exists", map[string]interface{}{"user": args.User})
		return errors.New(errors.AlreadyExists, "user already registered: "+args.User)
	}

	y1 := transport.DecodeScalar(args.Y1)
	y2 := transport.DecodeScalar(args.Y2)
	s.store.CreateUser(args.User, y1, y2)

	logger.InfoWithFields("user registered", map[string]interface{}{"user": args.User})
	*reply = transport.RegisterReply{}
	return nil
}

// CreateAuthenticationChallenge implements the
// CreateAuthenticationChallenge call: it looks up the user (NotFound
// if unknown), samples a fresh challenge scalar c, mints a fresh
// auth_id, and stores the pending Challenge.
func (s *Service) CreateAuthenticationChallenge(args *transport.ChallengeArgs, reply *transport.ChallengeReply) error {
	if !s.store.ContainsUser(args.User) {
		logger.WarnWithFields("challenge rejected: unknown user", map[string]interface{}{"user": args.User})
		return errors.New(errors.NotFound, "unknown user: "+args.User)
	}

	c, err := protocol.SampleChallenge()
	if err != nil {
		return errors.Wrap(errors.Internal, "sampling challenge scalar", err)
	}

	authID := protocol.NewAuthID()
	s.store.CreateChallenge(&store.Challenge{
		AuthID: authID,
		UserID: args.User,
		R1:     transport.DecodeScalar(args.R1),
		R2:     transport.DecodeScalar(args.R2),
		C:      c,
	})

	logger.DebugWithFields("challenge created", map[string]interface{}{"auth_id": authID, "user": args.User})
	*reply = transport.ChallengeReply{AuthID: authID, C: transport.EncodeScalar(c)}
	return nil
}

// VerifyAuthentication implements the VerifyAuthentication
// call: it recomputes the prover's commitments from (y1, y2, c, s) and
// compares them against the stored (r1, r2) in constant time,
// finalizing the Challenge exactly once on success.
func (s *Service) VerifyAuthentication(args *transport.AnswerArgs, reply *transport.AnswerReply) error {
	challenge := s.store.GetChallenge(args.AuthID)
	if challenge == nil {
		return errors.New(errors.NotFound, "unknown challenge: "+args.AuthID)
	}

	user := s.store.GetUser(challenge.UserID)
	if user == nil {
		return errors.New(errors.NotFound, "user for challenge no longer known: "+challenge.UserID)
	}

	sValue := transport.DecodeScalar(args.S)
	if !protocol.Verify(s.params, user.Y1, user.Y2, challenge.R1, challenge.R2, challenge.C, sValue) {
		logger.WarnWithFields("verification failed", map[string]interface{}{"auth_id": args.AuthID})
		return errors.Newf(errors.FailedPrecondition, "proof did not verify for auth_id %s", args.AuthID)
	}

	sessionID := protocol.NewSessionID()
	if err := s.store.FinalizeChallenge(args.AuthID, sValue, sessionID); err != nil {
		return err
	}

	logger.InfoWithFields("authentication verified", map[string]interface{}{"auth_id": args.AuthID, "session_id": sessionID})
	*reply = transport.AnswerReply{SessionID: sessionID}
	return nil
}

// Bind registers s under transport.ServiceName on the given net/rpc
// server, so callers can dial ServiceName.Register etc.
func Bind(server *rpc.Server, s *Service) error {
	return server.RegisterName(transport.ServiceName, s)
}
