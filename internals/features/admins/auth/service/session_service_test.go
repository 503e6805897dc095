package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions_backend/internals/features/admins/auth/model"
	"admissions_backend/internals/features/admins/auth/repository"
	"admissions_backend/internals/helpers/apperr"
)

type memAdmins struct {
	mu   sync.Mutex
	rows map[string]model.AdminModel
}

func (m *memAdmins) FindByUsername(_ context.Context, username string) (*model.AdminModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[username]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	return &a, nil
}

func (m *memAdmins) Create(_ context.Context, a *model.AdminModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.AdminID = uint(len(m.rows) + 1)
	m.rows[a.AdminUsername] = *a
	return nil
}

func (m *memAdmins) Exists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[username]
	return ok, nil
}

type memBlacklist struct {
	mu   sync.Mutex
	rows map[string]time.Time
}

func (b *memBlacklist) Add(_ context.Context, digest string, exp time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows[digest] = exp
	return nil
}

func (b *memBlacklist) IsBlacklisted(_ context.Context, digest string, now time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.rows[digest]
	return ok && exp.After(now), nil
}

func (b *memBlacklist) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int64
	for k, exp := range b.rows {
		if !exp.After(now) {
			delete(b.rows, k)
			n++
		}
	}
	return n, nil
}

func newSessions(t *testing.T, ttl time.Duration) *SessionService {
	t.Helper()
	admins := &memAdmins{rows: map[string]model.AdminModel{}}
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, admins.Create(context.Background(), &model.AdminModel{AdminUsername: "admin", AdminPassword: hash}))
	log, _ := test.NewNullLogger()
	return NewSessionService(admins, &memBlacklist{rows: map[string]time.Time{}}, "test-secret", ttl, log)
}

func TestAuthenticateAndRequireSession(t *testing.T) {
	s := newSessions(t, time.Hour)
	sess, err := s.Authenticate(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", sess.TokenType)
	assert.Equal(t, "admin", sess.Admin.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	who, err := s.RequireSession(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, AdminIdentity{ID: 1, Username: "admin"}, *who)
}

func TestAuthenticateFailuresLookAlike(t *testing.T) {
	s := newSessions(t, time.Hour)

	_, errWrongPass := s.Authenticate(context.Background(), "admin", "nope")
	_, errUnknown := s.Authenticate(context.Background(), "root", "s3cret-pass")
	_, errEmpty := s.Authenticate(context.Background(), "", "")

	for _, err := range []error{errWrongPass, errUnknown, errEmpty} {
		assert.ErrorIs(t, err, apperr.ErrAuth)
	}
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestRequireSessionRejects(t *testing.T) {
	s := newSessions(t, time.Hour)
	sess, err := s.Authenticate(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)

	other := newSessions(t, time.Hour)
	other.secret = []byte("different-secret")

	expired := newSessions(t, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Authenticate(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)

	cases := map[string]struct {
		svc   *SessionService
		token string
	}{
		"empty":         {s, ""},
		"garbage":       {s, "not.a.jwt"},
		"wrong secret":  {other, sess.Token},
		"expired token": {s, old.Token},
	}
	for name, tc := range cases {
		_, err := tc.svc.RequireSession(context.Background(), tc.token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated, name)
	}
}

func TestRevokeBlacklistsToken(t *testing.T) {
	s := newSessions(t, time.Hour)
	sess, err := s.Authenticate(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, s.Revoke(context.Background(), sess.Token))
	_, err = s.RequireSession(context.Background(), sess.Token)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	fresh, err := s.Authenticate(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)
	_, err = s.RequireSession(context.Background(), fresh.Token)
	assert.NoError(t, err, "a new login is unaffected")
}
