package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chachabrian/wodlog-backend/internal/auth"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type event struct {
	userID uint
	kind   string
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) SendToUser(userID uint, kind string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{userID, kind})
}

type fakeMedia struct{}

func (fakeMedia) Save(_ context.Context, file *multipart.FileHeader, userID uint) (string, error) {
	return fmt.Sprintf("https://cdn.test/media/%d/%s", userID, file.Filename), nil
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	store  *store.Memory
	cache  *mapCache
	events *recorder
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	s := store.NewMemory()
	opts := auth.DefaultOptions()
	opts.EchoCode = true
	authn := auth.NewAuthenticator(auth.Deps{
		Challenges: s,
		Accounts:   s,
		Tokens:     auth.NewTokenIssuer("test-secret", "wodlog", 24*time.Hour),
	}, opts)

	api := &testAPI{t: t, store: s, cache: &mapCache{data: map[string][]byte{}}, events: &recorder{}}
	deps := &Deps{
		Store:  s,
		Auth:   authn,
		Cache:  api.cache,
		Events: api.events,
		Media:  fakeMedia{},
		Logger: zap.NewNop(),
	}
	api.router = NewRouter(deps, RouterOptions{})
	return api
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// login runs the full request/verify flow and returns a bearer token.
func (a *testAPI) login(email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/request-otp", "", gin.H{"email": email})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	code := decode[map[string]interface{}](a.t, w)["dev_code"].(string)

	w = a.do(http.MethodPost, "/api/auth/verify-otp", "", gin.H{"email": email, "code": code})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[map[string]interface{}](a.t, w)["token"].(string)
}

func (a *testAPI) movementID(token, name string) uint {
	a.t.Helper()
	w := a.do(http.MethodGet, "/api/movements", token, nil)
	require.Equal(a.t, http.StatusOK, w.Code)
	for _, m := range decode[[]map[string]interface{}](a.t, w) {
		if m["name"] == name {
			return uint(m["id"].(float64))
		}
	}
	a.t.Fatalf("movement %q not found", name)
	return 0
}

func (a *testAPI) wodID(token, name string) uint {
	a.t.Helper()
	w := a.do(http.MethodGet, "/api/wods", token, nil)
	require.Equal(a.t, http.StatusOK, w.Code)
	for _, m := range decode[[]map[string]interface{}](a.t, w) {
		if m["name"] == name {
			return uint(m["id"].(float64))
		}
	}
	a.t.Fatalf("wod %q not found", name)
	return 0
}
