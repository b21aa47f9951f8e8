package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session token")

const sessionIssuer = "storefront"

type SessionClaims struct {
	jwt.RegisteredClaims
}

// Session is a verified session token.
type Session struct {
	ID       string
	IssuedAt time.Time
}

// Sessions issues and verifies the signed session tokens carried in the
// visitor cookie.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// SetClock replaces the time source used to issue and verify tokens.
func (s *Sessions) SetClock(now func() time.Time) {
	s.now = now
}

// NewSession starts a session with a fresh id.
func (s *Sessions) NewSession() (id, token string, err error) {
	id = uuid.NewString()
	token, err = s.Issue(id)
	return id, token, err
}

// Issue signs a token for an existing session id, extending its lifetime.
func (s *Sessions) Issue(id string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse returns the session id of a valid token.
func (s *Sessions) Parse(tokenStr string) (string, error) {
	sess, err := s.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// NeedsRenewal reports whether sess is past half of its lifetime.
func (s *Sessions) NeedsRenewal(sess Session) bool {
	return s.now().Sub(sess.IssuedAt) >= s.ttl/2
}

// Verify checks tokenStr and returns its session.
func (s *Sessions) Verify(tokenStr string) (Session, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return Session{}, ErrInvalidSession
	}
	return Session{ID: claims.Subject, IssuedAt: claims.IssuedAt.Time}, nil
}
