// Package store implements the in-memory, concurrency-safe catalog of
// registered users and in-flight authentication challenges. It is the
// sole shared mutable resource in the service: one RWMutex guards the
// user catalog, a second guards the challenge catalog, and a per-
// Challenge mutex guards in-place finalization — one mutex per map
// plus per-entry locking for the entries that need atomic updates.
package store

import (
	"math/big"
	"sync"

	"github.com/AINative-studio/ainative-code/internal/errors"
)

// User is a registered identity: a username and the two public
// commitments (y1, y2) bound to its secret.
type User struct {
	UserID string
	Y1     *big.Int
	Y2     *big.Int
}

// Challenge is a single in-flight (or finalized) authentication
// attempt. S and SessionID are nil until a successful
// VerifyAuthentication sets them together.
type Challenge struct {
	mu sync.Mutex

	AuthID    string
	UserID    string
	R1        *big.Int
	R2        *big.Int
	C         *big.Int
	S         *big.Int
	SessionID string
}

// Finalized reports whether this challenge has already been
// successfully verified.
func (c *Challenge) Finalized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.SessionID != ""
}

// Store is the process-memory catalog of Users and Challenges.
type Store struct {
	usersMu sync.RWMutex
	users   map[string]*User

	challengesMu sync.RWMutex
	challenges   map[string]*Challenge
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:      make(map[string]*User),
		challenges: make(map[string]*Challenge),
	}
}

// ContainsUser reports whether userID is already registered.
func (s *Store) ContainsUser(userID string) bool {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	_, ok := s.users[userID]
	return ok
}

// CreateUser inserts a new User. It is a programmer error to call this
// for a userID that already exists; the service façade is responsible
// for turning that case into errors.AlreadyExists before it reaches
// the store.
func (s *Store) CreateUser(userID string, y1, y2 *big.Int) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.users[userID]; exists {
		panic("store: CreateUser called for an existing user_id: " + userID)
	}

	s.users[userID] = &User{UserID: userID, Y1: y1, Y2: y2}
}

// GetUser returns the User for userID, or nil if unknown.
func (s *Store) GetUser(userID string) *User {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.users[userID]
}

// CreateChallenge inserts a new Challenge, keyed by its AuthID. It is a
// programmer error to call this for an AuthID that already exists.
func (s *Store) CreateChallenge(challenge *Challenge) {
	s.challengesMu.Lock()
	defer s.challengesMu.Unlock()

	if _, exists := s.challenges[challenge.AuthID]; exists {
		panic("store: CreateChallenge called for an existing auth_id: " + challenge.AuthID)
	}

	s.challenges[challenge.AuthID] = challenge
}

// GetChallenge returns the Challenge for authID, or nil if unknown.
func (s *Store) GetChallenge(authID string) *Challenge {
	s.challengesMu.RLock()
	defer s.challengesMu.RUnlock()
	return s.challenges[authID]
}

// FinalizeChallenge sets (s, session_id) on the challenge identified
// by authID, atomically and exactly once. It returns
// errors.AlreadyUsed if the challenge was already finalized, and
// errors.NotFound if authID is unknown. The challenge-table RWMutex is
// only held long enough to look the entry up; the per-challenge mutex
// then guards the write, so finalizing one challenge never blocks
// reads of, or finalization of, any other.
func (s *Store) FinalizeChallenge(authID string, sValue *big.Int, sessionID string) error {
	s.challengesMu.RLock()
	challenge, ok := s.challenges[authID]
	s.challengesMu.RUnlock()

	if !ok {
		return errors.New(errors.NotFound, "challenge not found: "+authID)
	}

	challenge.mu.Lock()
	defer challenge.mu.Unlock()

	if challenge.SessionID != "" {
		return errors.New(errors.AlreadyUsed, "challenge already used: "+authID)
	}

	challenge.S = sValue
	challenge.SessionID = sessionID
	return nil
}
