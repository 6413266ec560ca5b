package internal

import (
	"blueghost/internal/controllers"
	"blueghost/internal/models"
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"blueghost/internal/storage"
	"blueghost/internal/structures"
	"blueghost/internal/testutil"
	"blueghost/internal/views"
	"bytes"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testStack struct {
	conf   *structures.Config
	llm    *testutil.MockLLM
	store  *services.StoryStore
	router providers.RouterProviderInterface
	app    *App
}

func testConfig(t *testing.T) *structures.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("boo"), bcrypt.MinCost)
	require.NoError(t, err)
	return &structures.Config{
		AppName:     "BlueGhostStudio",
		WebServer:   structures.Server{Host: "127.0.0.1", Port: 8501, ReadTimeout: 5 * time.Second, WriteTimeout: 90 * time.Second},
		Persistence: structures.Persistence{FilePath: filepath.Join(t.TempDir(), "stories.json"), Compression: "none", OnCorrupt: "fail"},
		Credentials: []structures.Credential{{Username: "alice", Name: "Alice Ghost", PasswordHash: string(hash)}},
		Cookie:      structures.CookieConfig{Name: "blueghost_session", Key: "0123456789abcdef0123", ExpiryDays: 30},
		Cache:       structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
	}
}

func newTestStack(t *testing.T, conf *structures.Config) (*testStack, error) {
	t.Helper()
	logger := &testutil.MockLogger{}
	compressor, err := storage.NewCompressor(conf)
	require.NoError(t, err)
	fm := storage.NewFileManager(conf, compressor, logger)

	s := &testStack{conf: conf, llm: &testutil.MockLLM{Reply: "The fog rolled in."}}
	s.store = services.NewStoryStore(fm, logger)
	metrics := providers.NewMetricsProvider(conf, s.store)
	cache := providers.NewInstrumentedCacheProvider(conf, logger, metrics)
	generator := services.NewGenerationService(s.llm, s.store, cache, metrics, logger)
	auth := services.NewAuthService(conf, metrics, logger)
	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	s.router = InitRoutes(
		controllers.NewApiController(logger, s.store, generator, cache),
		controllers.NewPageController(renderer, s.store, generator, services.NewCharacterService(), logger),
		controllers.NewAuthController(renderer, auth, conf, logger),
	)
	s.app, err = NewApp(conf, logger, s.router, controllers.NewHealthController(s.store), auth, s.store, fm, metrics)
	return s, err
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestApp_GateRedirectsAnonymousBrowsers(t *testing.T) {
	s, err := newTestStack(t, testConfig(t))
	require.NoError(t, err)
	srv := httptest.NewServer(s.app.WebServer.Handler)
	defer srv.Close()
	client := newClient(t)

	for _, path := range []string{"/", "/profile", "/tips", "/character", "/download"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, err := client.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestApp_PublicEndpoints(t *testing.T) {
	s, err := newTestStack(t, testConfig(t))
	require.NoError(t, err)
	srv := httptest.NewServer(s.app.WebServer.Handler)
	defer srv.Close()

	for _, path := range []string{"/login", "/health"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.NotEmpty(t, resp.Header.Get(providers.RequestIDHeader))
	}
}

func TestApp_LoginGenerateDownload(t *testing.T) {
	s, err := newTestStack(t, testConfig(t))
	require.NoError(t, err)
	srv := httptest.NewServer(s.app.WebServer.Handler)
	defer srv.Close()
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"boo"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/api/stories", "application/json", strings.NewReader(`{"prompt":"fog","style":"Horror"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	var history []map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	resp.Body.Close()
	require.Len(t, history, 1)
	assert.Equal(t, "fog", history[0]["prompt"])
	assert.Equal(t, "Horror", history[0]["style"])

	resp, err = client.Get(srv.URL + "/download")
	require.NoError(t, err)
	body := new(bytes.Buffer)
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "The fog rolled in.", body.String())
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Horror_story.txt")

	data, err := os.ReadFile(s.conf.Persistence.FilePath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alice":[{"prompt":"fog","style":"Horror","story":"The fog rolled in."}]}`, string(data))

	resp, err = client.Post(srv.URL+"/logout", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/api/history")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestApp_CorruptStoreFailsStartup(t *testing.T) {
	conf := testConfig(t)
	require.NoError(t, os.WriteFile(conf.Persistence.FilePath, []byte("{broken"), 0644))

	_, err := newTestStack(t, conf)
	assert.ErrorIs(t, err, services.ErrStorageCorrupt)
}

func TestApp_MissingStoreIsInitialized(t *testing.T) {
	conf := testConfig(t)

	_, err := newTestStack(t, conf)
	require.NoError(t, err)

	data, err := os.ReadFile(conf.Persistence.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestApp_AuthenticatedUnknownPathIsNotFound(t *testing.T) {
	s, err := newTestStack(t, testConfig(t))
	require.NoError(t, err)
	srv := httptest.NewServer(s.app.WebServer.Handler)
	defer srv.Close()
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"boo"}})
	require.NoError(t, err)
	resp.Body.Close()

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req, err := http.NewRequest(method, srv.URL+"/haunted/attic", nil)
		require.NoError(t, err)
		resp, err = client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, method)
	}
}

func TestApp_DownloadByPositionAfterLaterStories(t *testing.T) {
	s, err := newTestStack(t, testConfig(t))
	require.NoError(t, err)
	srv := httptest.NewServer(s.app.WebServer.Handler)
	defer srv.Close()
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"username": {"alice"}, "password": {"boo"}})
	require.NoError(t, err)
	resp.Body.Close()

	_, err = s.store.Append("alice", models.GenerationRecord{Prompt: "old", Style: models.StyleRomance, Story: "First tale."})
	require.NoError(t, err)
	resp, err = client.Post(srv.URL+"/api/stories", "application/json", strings.NewReader(`{"prompt":"fog","style":"Horror"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/download?seq=1")
	require.NoError(t, err)
	body := new(bytes.Buffer)
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "First tale.", body.String())
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Romance_story.txt")
}
