package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/api/http/handlers"
	"github.com/spec-kit/dominion-roster/internal/auth"
	"github.com/spec-kit/dominion-roster/internal/config"
	"github.com/spec-kit/dominion-roster/internal/domain"
	"github.com/spec-kit/dominion-roster/internal/observability"
	"github.com/spec-kit/dominion-roster/internal/service"
	"github.com/spec-kit/dominion-roster/internal/store"
)

// stubStore satisfies store.MemberStore and lets tests feed snapshots into
// the roster service.
type stubStore struct {
	mu       sync.Mutex
	docs     map[string]domain.Member
	sets     int
	callback func(store.Snapshot)
}

func newStubStore() *stubStore {
	return &stubStore{docs: make(map[string]domain.Member)}
}

func (s *stubStore) Subscribe(_ context.Context, onSnapshot func(store.Snapshot)) (store.Unsubscribe, error) {
	s.callback = onSnapshot
	return func() {}, nil
}

func (s *stubStore) Set(_ context.Context, member domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[member.ID] = member
	s.sets++
	return nil
}

func (s *stubStore) Update(_ context.Context, id string, _ map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return store.ErrNotFound
	}
	return nil
}

func (s *stubStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *stubStore) push(snapshot store.Snapshot) {
	s.mu.Lock()
	s.docs = make(map[string]domain.Member, len(snapshot))
	for id, member := range snapshot {
		s.docs[id] = member
	}
	s.mu.Unlock()
	s.callback(snapshot)
}

type staticGenerator struct{ text string }

func (g staticGenerator) Generate(context.Context, string) (string, error) {
	return g.text, nil
}

type testApp struct {
	app   *fiber.App
	store *stubStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	st := newStubStore()
	roster := service.NewRosterService([]string{"S20", "S21"}, service.RosterDependencies{
		Store:   st,
		Metrics: metrics,
		Logger:  logger,
	})
	require.NoError(t, roster.Start(context.Background()))

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		AdminUsername:         "Q",
		AdminSecret:           "0919",
		FailureWindowSeconds:  3,
	}
	gate := auth.NewGate(authCfg)
	tokens := auth.NewTokenManager(authCfg.JWTSecret, authCfg.AccessTokenTTLMinutes)

	advisoryService := service.NewAdvisoryService(staticGenerator{text: "鞏固A組優勢。"}, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil, roster),
		Session:        handlers.NewSessionHandler(gate, tokens),
		Members:        handlers.NewMembersHandler(roster),
		Advisory:       handlers.NewAdvisoryHandler(advisoryService, roster),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	return &testApp{app: app, store: st}
}

func (ta *testApp) request(t *testing.T, method, path, token string, body any) (*nethttp.Response, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := nethttp.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	envelope := map[string]json.RawMessage{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &envelope)
	}
	return resp, envelope
}

func (ta *testApp) login(t *testing.T, body any) string {
	t.Helper()
	path := "/auth/visitor"
	if body != nil {
		path = "/auth/admin/login"
	}
	resp, envelope := ta.request(t, nethttp.MethodPost, path, "", body)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestMembersRequireSession(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.request(t, nethttp.MethodGet, "/members/", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	resp, _ = ta.request(t, nethttp.MethodGet, "/members/", "not-a-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestVisitorCanListButNotMutate(t *testing.T) {
	ta := newTestApp(t)
	ta.store.push(store.Snapshot{
		"m1": {ID: "m1", Name: "甜言蜜語", Group: "A", SeasonalHistory: []domain.SeasonalStatus{
			{Season: "S20", Status: domain.StatusCurrentDominion},
		}},
	})
	token := ta.login(t, nil)

	resp, envelope := ta.request(t, nethttp.MethodGet, "/members/", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var roster struct {
		Members []struct {
			Name          string `json:"name"`
			DominionCount int    `json:"dominionCount"`
		} `json:"members"`
		SyncState      string         `json:"syncState"`
		DominionTotals map[string]int `json:"dominionTotals"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &roster))
	require.Len(t, roster.Members, 1)
	assert.Equal(t, "甜言蜜語", roster.Members[0].Name)
	assert.Equal(t, 1, roster.Members[0].DominionCount)
	assert.Equal(t, "SYNCED", roster.SyncState)
	assert.Equal(t, 1, roster.DominionTotals["S20"])

	resp, _ = ta.request(t, nethttp.MethodPost, "/members/", token,
		map[string]any{"name": "新成員"})
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

	resp, _ = ta.request(t, nethttp.MethodDelete, "/members/m1?confirm=true", token, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestAdminLoginAndCreate(t *testing.T) {
	ta := newTestApp(t)
	ta.store.push(store.Snapshot{"m1": {ID: "m1", Name: "甜言蜜語"}})
	token := ta.login(t, map[string]string{"username": "Q", "secret": "0919"})

	resp, envelope := ta.request(t, nethttp.MethodPost, "/members/", token,
		map[string]any{"name": "新成員"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, ta.store.sets)

	resp, _ = ta.request(t, nethttp.MethodPut, "/members/m1/seasons/S20", token,
		map[string]string{"status": string(domain.StatusReceived)})
	assert.Equal(t, nethttp.StatusAccepted, resp.StatusCode)

	resp, _ = ta.request(t, nethttp.MethodDelete, "/members/m1", token, nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode, "removal without confirm=true is rejected")

	resp, _ = ta.request(t, nethttp.MethodDelete, "/members/m1?confirm=true", token, nil)
	assert.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
}

func TestAdminLoginFailure(t *testing.T) {
	ta := newTestApp(t)

	resp, envelope := ta.request(t, nethttp.MethodPost, "/auth/admin/login", "",
		map[string]string{"username": "Q", "secret": "wrong"})
	require.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	var errBody struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(envelope["error"], &errBody))
	assert.Equal(t, auth.FailureMessage, errBody.Message)

	// the transient failure message is visible on the state endpoint
	resp, envelope = ta.request(t, nethttp.MethodGet, "/auth/state", "", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var state struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &state))
	assert.Equal(t, auth.FailureMessage, state.Error)
}

func TestAdvisoryAnalyze(t *testing.T) {
	ta := newTestApp(t)
	ta.store.push(store.Snapshot{"m1": {ID: "m1", Name: "甜言蜜語", Group: "A"}})
	token := ta.login(t, nil)

	resp, envelope := ta.request(t, nethttp.MethodPost, "/advisory/analyze", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var analysis struct {
		Analysis string `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(envelope["data"], &analysis))
	assert.Equal(t, "鞏固A組優勢。", analysis.Analysis)
}

func TestHealthLive(t *testing.T) {
	ta := newTestApp(t)
	resp, _ := ta.request(t, nethttp.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
