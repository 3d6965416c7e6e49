package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/palaro/guessquiz/internal/dependencies/clock"
	"github.com/palaro/guessquiz/internal/model"
)

// Session is an authenticated caller.
type Session struct {
	Token       string
	Username    model.Username
	DisplayName string
	Operator    bool
	CreatedAt   time.Time
}

// Service issues and validates sessions.
//
// Participant sessions are honor-system: anyone may claim a username,
// matching how a group chat surfaces identity. Operator sessions
// additionally require the username to be on the operator allow-list
// and the shared passphrase to match.
type Service struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	clock     clock.Clock
	sessions  map[string]Session
	operators map[model.Username]bool
	passHash  []byte
}

// NewService builds the auth service. operators is the allow-list of
// usernames permitted to run game controls; passHash is the bcrypt
// hash of the shared operator passphrase.
func NewService(logger *slog.Logger, clk clock.Clock, operators []model.Username, passHash string) *Service {
	allowed := make(map[model.Username]bool, len(operators))
	for _, op := range operators {
		allowed[op] = true
	}
	return &Service{
		logger:    logger,
		clock:     clk,
		sessions:  map[string]Session{},
		operators: allowed,
		passHash:  []byte(passHash),
	}
}

// CreateSession issues a participant session token.
func (s *Service) CreateSession(username model.Username, displayName string) (Session, error) {
	if username == "" {
		return Session{}, fmt.Errorf("%w: empty username", model.ErrUnauthorized)
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, err
	}

	session := Session{
		Token:       token,
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   s.clock.Now(),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// OperatorLogin issues an operator session. The username must be on
// the allow-list and the passphrase must match the configured hash.
func (s *Service) OperatorLogin(username model.Username, passphrase string) (Session, error) {
	if !s.operators[username] {
		s.logger.Warn("Operator login rejected, not on allow-list",
			"username", username)
		return Session{}, model.ErrUnauthorized
	}
	if len(s.passHash) == 0 {
		return Session{}, model.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passHash, []byte(passphrase)); err != nil {
		s.logger.Warn("Operator login rejected, bad passphrase",
			"username", username)
		return Session{}, model.ErrUnauthorized
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, err
	}

	session := Session{
		Token:       token,
		Username:    username,
		DisplayName: string(username),
		Operator:    true,
		CreatedAt:   s.clock.Now(),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	s.logger.Info("Operator logged in", "username", username)
	return session, nil
}

// Validate resolves a token to its session.
func (s *Service) Validate(token string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return Session{}, model.ErrUnauthorized
	}
	return session, nil
}

// RequireOperator resolves a token and checks the operator flag.
func (s *Service) RequireOperator(token string) (Session, error) {
	session, err := s.Validate(token)
	if err != nil {
		return Session{}, err
	}
	if !session.Operator {
		return Session{}, model.ErrUnauthorized
	}
	return session, nil
}

// HashPassphrase produces a bcrypt hash suitable for configuration.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing passphrase: %w", err)
	}
	return string(hash), nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
