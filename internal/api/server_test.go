package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-analyzer/internal/analysis"
	"github.com/community-analyzer/internal/community"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/runner"
)

type fakeRunner struct {
	got    models.RunRequest
	err    error
	panics bool
}

func (f *fakeRunner) Run(_ context.Context, req models.RunRequest) (*models.Report, error) {
	if f.panics {
		panic("boom")
	}
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Report{ID: "run-1", Variant: req.Variant, ServerName: "Builders", MessageCount: 12}, nil
}

func newTestServer(r Runner) *Server {
	catalog := community.New(community.DefaultProfile(), []models.CommunityServer{{
		ID:       "932238833146277958",
		Name:     "Builders",
		Channels: map[string]string{"1002": "dev-help", "1001": "general"},
	}})
	return NewServer(8080, r, catalog, time.UTC, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := do(t, newTestServer(&fakeRunner{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListServers(t *testing.T) {
	w := do(t, newTestServer(&fakeRunner{}), http.MethodGet, "/api/v1/servers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var servers []ServerInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&servers))
	require.Len(t, servers, 1)
	assert.Equal(t, "Builders", servers[0].Name)
	assert.Equal(t, []ChannelInfo{{ID: "1001", Name: "general"}, {ID: "1002", Name: "dev-help"}}, servers[0].Channels)
}

func TestCreateRun(t *testing.T) {
	r := &fakeRunner{}
	body := `{"variant":"insights","server":"Builders","channels":["general"],"start":"2024-06-01","end":"2024-06-07","failure_mode":"strict"}`

	w := do(t, newTestServer(r), http.MethodPost, "/api/v1/runs", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, models.VariantInsight, r.got.Variant)
	assert.Equal(t, "Builders", r.got.Server)
	assert.Equal(t, []string{"general"}, r.got.Channels)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), r.got.Start)
	assert.Equal(t, time.Date(2024, 6, 7, 23, 59, 59, 0, time.UTC), r.got.End)
	assert.Equal(t, models.FailureStrict, r.got.FailureMode)

	var report models.Report
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "run-1", report.ID)
	assert.Equal(t, 12, report.MessageCount)
}

func TestCreateRunBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"variant":`},
		{"unknown variant", `{"variant":"poetry","server":"Builders","start":"2024-06-01","end":"2024-06-07"}`},
		{"bad start", `{"variant":"chat","server":"Builders","start":"yesterday","end":"2024-06-07"}`},
		{"bad end", `{"variant":"chat","server":"Builders","start":"2024-06-01","end":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			w := do(t, newTestServer(r), http.MethodPost, "/api/v1/runs", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			assert.Empty(t, r.got.Variant)
		})
	}
}

func TestCreateRunMapsRunnerErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("failed to resolve server: %w", community.ErrUnknownServer), http.StatusBadRequest},
		{fmt.Errorf("%w: end before start", runner.ErrInvalidRequest), http.StatusBadRequest},
		{fmt.Errorf("%w for Builders", runner.ErrNoMessages), http.StatusNotFound},
		{fmt.Errorf("failed to analyze: %w", analysis.ErrStrictFailure), http.StatusBadGateway},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	body := `{"variant":"chat","server":"Builders","start":"2024-06-01","end":"2024-06-07"}`
	for _, tt := range tests {
		w := do(t, newTestServer(&fakeRunner{err: tt.err}), http.MethodPost, "/api/v1/runs", body)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.Contains(t, w.Body.String(), tt.err.Error())
	}
}

func TestRecoverMiddleware(t *testing.T) {
	body := `{"variant":"chat","server":"Builders","start":"2024-06-01","end":"2024-06-07"}`
	w := do(t, newTestServer(&fakeRunner{panics: true}), http.MethodPost, "/api/v1/runs", body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}

func TestNotFoundEndpoint(t *testing.T) {
	w := do(t, newTestServer(&fakeRunner{}), http.MethodGet, "/nonexistent", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
