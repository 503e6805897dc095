// internals/features/admins/auth/service/session_service.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"admissions_backend/internals/features/admins/auth/repository"
	"admissions_backend/internals/helpers/apperr"
)

// AdminIdentity is what an authenticated request carries downstream.
type AdminIdentity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type Session struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminIdentity `json:"admin"`
}

type sessionClaims struct {
	Username string `json:"usr"`
	jwt.RegisteredClaims
}

var (
	errBadCredentials = apperr.New(apperr.KindAuth, "invalid username or password")
	errNoSession      = apperr.New(apperr.KindUnauthenticated, "authentication required")
	errBadSession     = apperr.New(apperr.KindUnauthenticated, "session is invalid or expired")
	errRevoked        = apperr.New(apperr.KindUnauthenticated, "session has been logged out")
)

// SessionService is the admin access gate: it trades credentials for a signed,
// expiring token and maps tokens back to an AdminIdentity. It holds no
// per-user state besides the revocation list.
type SessionService struct {
	admins    repository.AdminRepository
	blacklist repository.TokenBlacklistRepository
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
	log       logrus.FieldLogger
}

func NewSessionService(
	admins repository.AdminRepository,
	blacklist repository.TokenBlacklistRepository,
	secret string,
	ttl time.Duration,
	log logrus.FieldLogger,
) *SessionService {
	return &SessionService{
		admins:    admins,
		blacklist: blacklist,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// Authenticate verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *SessionService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errBadCredentials
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrAdminNotFound) {
		s.log.WithField("admin", username).Warn("login failed: unknown admin")
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.AdminPassword), []byte(password)); err != nil {
		s.log.WithField("admin", username).Warn("login failed: wrong password")
		return nil, errBadCredentials
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := sessionClaims{
		Username: admin.AdminUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.AdminID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	s.log.WithField("admin", admin.AdminUsername).Info("admin logged in")
	return &Session{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: exp,
		Admin:     AdminIdentity{ID: admin.AdminID, Username: admin.AdminUsername},
	}, nil
}

// RequireSession resolves a token to the admin it was issued to.
func (s *SessionService) RequireSession(ctx context.Context, token string) (*AdminIdentity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, s.digest(token), s.now())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errRevoked
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, errBadSession
	}
	return &AdminIdentity{ID: uint(id), Username: claims.Username}, nil
}

// Revoke blacklists token until its own expiry.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := s.blacklist.Add(ctx, s.digest(token), claims.ExpiresAt.Time); err != nil {
		return err
	}
	s.log.WithField("admin", claims.Username).Info("admin logged out")
	return nil
}

func (s *SessionService) parse(token string) (*sessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errNoSession
	}
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "session is invalid or expired", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errBadSession
	}
	return claims, nil
}

// digest keeps raw tokens out of the blacklist table.
func (s *SessionService) digest(token string) string {
	m := hmac.New(sha256.New, s.secret)
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}
