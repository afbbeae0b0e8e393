package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/gymcoach/internal/training/api"
	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/progression"
	"github.com/2beens/gymcoach/internal/training/suggestion"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lifter   = "lifter"
	deloader = "deloader"
)

func (s *IntegrationTestSuite) exec(query string, args ...any) {
	_, err := s.DB.Exec(query, args...)
	require.NoError(s.T(), err)
}

// seed writes two users: lifter, with a squat history, and deloader, with a single session.
func (s *IntegrationTestSuite) seed() {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, u := range []string{lifter, deloader} {
		s.exec(`INSERT INTO training_user (id) VALUES ($1)`, u)
	}

	s.exec(`INSERT INTO exercise_slot (user_id, exercise_id, name, category, equipment, rep_range_min, rep_range_max, target_sets, rest_seconds)
		VALUES ($1, 'squat', 'Back Squat', 'compound', 'barbell', 3, 5, 5, 180)`, lifter)

	for i := 0; i < 4; i++ {
		date := today.AddDate(0, 0, -2*i-1)
		sessionID := fmt.Sprintf("%s-s%d", lifter, i)
		s.exec(`INSERT INTO training_session (id, user_id, session_date, status, avg_rpe, total_volume) VALUES ($1, $2, $3, 'completed', 7.5, 6000)`,
			sessionID, lifter, date)
		for set := 0; set < 3; set++ {
			s.exec(`INSERT INTO exercise_set (session_id, user_id, exercise_id, weight, reps, rpe, is_warmup, created_at)
				VALUES ($1, $2, 'squat', 100, 5, 7.5, false, $3)`,
				sessionID, lifter, date.Add(time.Duration(set)*time.Minute))
		}
	}
	s.exec(`INSERT INTO recovery_checkin (user_id, checkin_date, sleep_hours, energy_level, soreness) VALUES ($1, $2, 7.5, 4, 2)`,
		lifter, today)

	s.exec(`INSERT INTO training_session (id, user_id, session_date, status, avg_rpe, total_volume) VALUES ('deloader-s0', $1, $2, 'completed', 8, 5000)`,
		deloader, today.AddDate(0, 0, -1))
}

func (s *IntegrationTestSuite) do(method, path string, body any, withToken bool) (int, []byte) {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if withToken {
		req.Header.Set("X-GYMCOACH-TOKEN", testToken)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestAuth() {
	status, _ := s.do(http.MethodGet, "/training/users/lifter/fatigue", nil, false)
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/health", nil, false)
	assert.Equal(s.T(), http.StatusOK, status)
}

func (s *IntegrationTestSuite) TestFatigue() {
	t := s.T()

	status, body := s.do(http.MethodGet, "/training/users/lifter/fatigue", nil, true)
	require.Equal(t, http.StatusOK, status)

	var res fatigue.Result
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, lifter, res.UserID)
	assert.GreaterOrEqual(t, res.Score, 0)
	assert.LessOrEqual(t, res.Score, 10)
	assert.Equal(t, fatigue.StatusForScore(res.Score), res.Status)

	status, _ = s.do(http.MethodGet, "/training/users/nobody/fatigue", nil, true)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodGet, "/training/users/lifter/fatigue?days=0", nil, true)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestFatigueLogAndTrend() {
	t := s.T()

	status, _ := s.do(http.MethodPost, "/training/users/lifter/fatigue/log", nil, true)
	require.Equal(t, http.StatusCreated, status)
	// same day again replaces the entry
	status, _ = s.do(http.MethodPost, "/training/users/lifter/fatigue/log", nil, true)
	require.Equal(t, http.StatusCreated, status)

	status, body := s.do(http.MethodGet, "/training/users/lifter/fatigue/trend?days=7", nil, true)
	require.Equal(t, http.StatusOK, status)

	var trend api.FatigueTrendResponse
	require.NoError(t, json.Unmarshal(body, &trend))
	require.Len(t, trend.Entries, 1)
	assert.Equal(t, lifter, trend.Entries[0].UserID)
}

func (s *IntegrationTestSuite) TestDeloadLifecycle() {
	t := s.T()
	base := "/training/users/" + deloader

	status, body := s.do(http.MethodPost, base+"/deload", deload.ManualParams{
		Type:         deload.TypeIntensity,
		Reason:       "integration test",
		DurationDays: 5,
	}, true)
	require.Equal(t, http.StatusCreated, status, string(body))

	var period deload.Period
	require.NoError(t, json.Unmarshal(body, &period))
	assert.Equal(t, deload.TypeIntensity, period.Type)
	assert.Equal(t, 5, period.DurationDays)
	assert.True(t, period.Active)

	status, _ = s.do(http.MethodPost, base+"/deload", nil, true)
	assert.Equal(t, http.StatusConflict, status)

	status, body = s.do(http.MethodGet, base+"/deload", nil, true)
	require.Equal(t, http.StatusOK, status)
	var active api.ActiveDeloadResponse
	require.NoError(t, json.Unmarshal(body, &active))
	require.NotNil(t, active.Active)
	assert.Equal(t, period.ID, active.Active.Period.ID)
	assert.Equal(t, 5, active.Active.DaysRemaining)

	status, body = s.do(http.MethodGet, base+"/modifiers", nil, true)
	require.Equal(t, http.StatusOK, status)
	var mods deload.Modifiers
	require.NoError(t, json.Unmarshal(body, &mods))
	assert.Equal(t, period.IntensityModifier, mods.Intensity)

	status, body = s.do(http.MethodDelete, base+"/deload", nil, true)
	require.Equal(t, http.StatusOK, status)
	var ended api.EndDeloadResponse
	require.NoError(t, json.Unmarshal(body, &ended))
	require.NotNil(t, ended.Ended)
	assert.False(t, ended.Ended.Active)

	status, body = s.do(http.MethodGet, base+"/deload", nil, true)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"active":null}`, string(body))
}

func (s *IntegrationTestSuite) TestProgression() {
	t := s.T()
	base := "/training/users/" + lifter + "/exercises"

	status, body := s.do(http.MethodGet, base+"/squat/gate", nil, true)
	require.Equal(t, http.StatusOK, status, string(body))
	var gate progression.GateResult
	require.NoError(t, json.Unmarshal(body, &gate))

	status, body = s.do(http.MethodGet, base+"/squat/recommendation", nil, true)
	require.Equal(t, http.StatusOK, status, string(body))
	var rec progression.Recommendation
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, gate.CanProgress, rec.Status == progression.StatusReady, string(body))

	status, body = s.do(http.MethodGet, base+"/squat/suggestion", nil, true)
	require.Equal(t, http.StatusOK, status, string(body))
	var sugg suggestion.WeightSuggestion
	require.NoError(t, json.Unmarshal(body, &sugg))
	assert.Equal(t, "squat", sugg.ExerciseID)
	assert.Greater(t, sugg.Weight, 0.0)
	assert.Equal(t, 180, sugg.RestSeconds)

	status, _ = s.do(http.MethodGet, base+"/deadlift/suggestion", nil, true)
	assert.Equal(t, http.StatusNotFound, status)
}

type tokenTransport struct {
	next http.RoundTripper
}

func (tt *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-GYMCOACH-TOKEN", testToken)
	req.Header.Set("User-Agent", "test-agent")
	return tt.next.RoundTrip(req)
}

func (s *IntegrationTestSuite) TestMCPOverHTTP() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:   serverEndpoint + "/mcp",
		HTTPClient: &http.Client{Transport: &tokenTransport{next: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 11)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "suggest_weight",
		Arguments: map[string]any{"user_id": lifter, "exercise_id": "squat"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{Name: "get_training_context", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "## deload_period")
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	t := s.T()
	resp, err := s.httpClient.Get(fmt.Sprintf("http://%s:%s/metrics", serverHost, metricsPort))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "gymcoach_main_request")
	assert.Contains(t, string(raw), "pgxpool_")
}
