package impl

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"authcore/config"
	"authcore/internal/domain/entity"
	"authcore/internal/domain/repository"
	"authcore/internal/domain/service"
	"authcore/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testServiceAPIKey = "profile-service-key"
	testServiceName   = "authservice"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			Issuer:     "myapp/authservice",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: time.Hour,
			ServiceTTL: 5 * time.Minute,
		},
		ServiceKeys: []config.ServiceKey{{Name: testServiceName, Key: testServiceAPIKey}},
		Auth:        &config.AuthConfig{BcryptCost: 4, DefaultRole: string(entity.RoleUser)},
		ProfileService: &config.ProfileServiceConfig{
			BaseURL: "http://profiles.invalid",
			APIKey:  testServiceAPIKey,
		},
	}
}

type staticKeys struct {
	key *rsa.PrivateKey
}

func (k staticKeys) PrivateKey() *rsa.PrivateKey { return k.key }
func (k staticKeys) PublicKey() *rsa.PublicKey   { return &k.key.PublicKey }

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

func newTestTokenService(t *testing.T, cfg *config.Config, clock *testClock) service.TokenService {
	t.Helper()

	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = key
	})
	require.NotNil(t, testKey)

	return auth.NewTokenService(staticKeys{key: testKey}, cfg.JWT.Issuer, cfg.ServiceKeys, auth.WithClock(clock.Now))
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// recordingMetrics counts every call. Safe for concurrent use.
type recordingMetrics struct {
	mu            sync.Mutex
	logins        map[string]int
	registrations map[string]int
	fatal         int
	swept         int64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{logins: map[string]int{}, registrations: map[string]int{}}
}

func (m *recordingMetrics) LoginAttempt(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[result]++
}

func (m *recordingMetrics) RegistrationOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[outcome]++
}

func (m *recordingMetrics) FatalInconsistency() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fatal++
}

func (m *recordingMetrics) SessionsSwept(count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swept += count
}

func (m *recordingMetrics) BreakerState(string, string) {}

// memStore is an in-memory credential and refresh token store. Transactions are
// serialized and rolled back from a snapshot when fn fails, so every Execute is atomic.
type memStore struct {
	txMu       sync.Mutex
	identities map[int64]entity.Identity
	roles      map[entity.RoleName]entity.Role
	tokens     map[uuid.UUID]entity.RefreshToken
}

func newMemStore() *memStore {
	return &memStore{
		identities: map[int64]entity.Identity{},
		roles: map[entity.RoleName]entity.Role{
			entity.RoleUser:  {ID: 1, Name: entity.RoleUser, Description: "regular user"},
			entity.RoleAdmin: {ID: 2, Name: entity.RoleAdmin, Description: "administrator"},
		},
		tokens: map[uuid.UUID]entity.RefreshToken{},
	}
}

func (s *memStore) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	identities := make(map[int64]entity.Identity, len(s.identities))
	for k, v := range s.identities {
		identities[k] = v
	}
	tokens := make(map[uuid.UUID]entity.RefreshToken, len(s.tokens))
	for k, v := range s.tokens {
		tokens[k] = v
	}

	if err := fn(memFactory{s: s}); err != nil {
		s.identities = identities
		s.tokens = tokens

		return err
	}

	return nil
}

func (s *memStore) seedIdentity(identity entity.Identity) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.identities[identity.ID] = identity
}

func (s *memStore) identity(id int64) (entity.Identity, bool) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	identity, ok := s.identities[id]

	return identity, ok
}

func (s *memStore) identityCount() int {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	return len(s.identities)
}

func (s *memStore) tokensOf(identityID int64) []entity.RefreshToken {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	var out []entity.RefreshToken
	for _, token := range s.tokens {
		if token.IdentityID == identityID {
			out = append(out, token)
		}
	}

	return out
}

type memFactory struct{ s *memStore }

func (f memFactory) IdentityRepo() repository.IdentityRepository         { return memIdentityRepo(f) }
func (f memFactory) RoleRepo() repository.RoleRepository                 { return memRoleRepo(f) }
func (f memFactory) RefreshTokenRepo() repository.RefreshTokenRepository { return memTokenRepo(f) }

type memIdentityRepo struct{ s *memStore }

func (r memIdentityRepo) FindByUsername(_ context.Context, username string) (*entity.Identity, error) {
	for _, identity := range r.s.identities {
		if identity.Username == username {
			return &identity, nil
		}
	}

	return nil, repository.ErrIdentityNotFound
}

func (r memIdentityRepo) FindByID(_ context.Context, id int64) (*entity.Identity, error) {
	identity, ok := r.s.identities[id]
	if !ok {
		return nil, repository.ErrIdentityNotFound
	}

	return &identity, nil
}

func (r memIdentityRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, identity := range r.s.identities {
		if identity.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r memIdentityRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, identity := range r.s.identities {
		if identity.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r memIdentityRepo) Create(_ context.Context, identity *entity.Identity) error {
	for _, existing := range r.s.identities {
		if existing.ID == identity.ID || existing.Username == identity.Username || existing.Email == identity.Email {
			return errors.Wrap(repository.ErrIdentityConflict, "duplicate key")
		}
	}
	r.s.identities[identity.ID] = *identity

	return nil
}

func (r memIdentityRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	identity, ok := r.s.identities[id]
	if !ok {
		return repository.ErrIdentityNotFound
	}
	identity.LastLoginAt = &at
	r.s.identities[id] = identity

	return nil
}

func (r memIdentityRepo) LockForUpdate(_ context.Context, id int64) error {
	if _, ok := r.s.identities[id]; !ok {
		return repository.ErrIdentityNotFound
	}

	return nil
}

type memRoleRepo struct{ s *memStore }

func (r memRoleRepo) FindByName(_ context.Context, name entity.RoleName) (*entity.Role, error) {
	role, ok := r.s.roles[name]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}

	return &role, nil
}

type memTokenRepo struct{ s *memStore }

func (r memTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	for _, existing := range r.s.tokens {
		if existing.IdentityID == token.IdentityID || existing.TokenHash == token.TokenHash {
			return repository.ErrRefreshTokenConflict
		}
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.s.tokens[token.ID] = *token

	return nil
}

func (r memTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	for _, token := range r.s.tokens {
		if token.TokenHash == tokenHash {
			return &token, nil
		}
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (r memTokenRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.tokens[id]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.s.tokens, id)

	return nil
}

func (r memTokenRepo) DeleteByIdentityID(_ context.Context, identityID int64) (int64, error) {
	var removed int64
	for id, token := range r.s.tokens {
		if token.IdentityID == identityID {
			delete(r.s.tokens, id)
			removed++
		}
	}

	return removed, nil
}

func (r memTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, token := range r.s.tokens {
		if token.IsExpired(now) {
			delete(r.s.tokens, id)
			removed++
		}
	}

	return removed, nil
}
