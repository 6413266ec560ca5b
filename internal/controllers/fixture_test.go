package controllers

import (
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"blueghost/internal/structures"
	"blueghost/internal/testutil"
	"blueghost/internal/views"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memPersister struct {
	saved   models.Storage
	saveErr error
}

func (m *memPersister) Load() (models.Storage, error) {
	if m.saved == nil {
		return models.Storage{}, nil
	}
	return m.saved.Clone(), nil
}

func (m *memPersister) Save(s models.Storage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = s.Clone()
	return nil
}

type fixture struct {
	conf      *structures.Config
	persister *memPersister
	store     *services.StoryStore
	llm       *testutil.MockLLM
	cache     *testutil.MockCache
	metrics   *testutil.MockMetrics
	generator *services.GenerationService
	auth      *services.AuthService
	renderer  *views.Renderer
}

var alice = models.Identity{DisplayName: "Alice Ghost", Username: "alice"}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("boo"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		conf: &structures.Config{
			Credentials: []structures.Credential{{Username: "alice", Name: "Alice Ghost", PasswordHash: string(hash)}},
			Cookie:      structures.CookieConfig{Name: "blueghost_session", Key: "0123456789abcdef0123", ExpiryDays: 30},
		},
		persister: &memPersister{},
		llm:       &testutil.MockLLM{Reply: "The fog rolled in at midnight."},
		cache:     &testutil.MockCache{},
		metrics:   &testutil.MockMetrics{},
	}
	logger := &testutil.MockLogger{}

	f.store = services.NewStoryStore(f.persister, logger)
	require.NoError(t, f.store.Load())
	f.generator = services.NewGenerationService(f.llm, f.store, f.cache, f.metrics, logger)
	f.auth = services.NewAuthService(f.conf, f.metrics, logger)
	f.renderer, err = views.NewRenderer()
	require.NoError(t, err)
	return f
}

func (f *fixture) seed(t *testing.T, username string, records ...models.GenerationRecord) {
	t.Helper()
	for _, r := range records {
		_, err := f.store.Append(username, r)
		require.NoError(t, err)
	}
}

func (f *fixture) failCompletions() {
	f.llm.Err = errors.New("upstream unavailable")
}

// as attaches an identity the way the session middleware does.
func as(r *http.Request, id models.Identity) *http.Request {
	return r.WithContext(providers.WithIdentity(r.Context(), id))
}
