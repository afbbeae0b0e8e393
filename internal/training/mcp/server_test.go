package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/2beens/gymcoach/internal/telemetry/metrics"
	"github.com/2beens/gymcoach/internal/training/engine"
	"github.com/2beens/gymcoach/internal/training/history"
	"github.com/2beens/gymcoach/internal/training/store"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}

func TestNewServer_Tools(t *testing.T) {
	eng := engine.New(engine.Params{
		Store:   store.NewMemoryStore(),
		Config:  engine.DefaultConfig(),
		Metrics: metrics.NewTestManager(),
	})

	session := connect(t, NewServer(eng, nil, "test"))
	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"get_fatigue",
		"get_fatigue_trend",
		"check_deload",
		"get_active_deload",
		"start_deload",
		"end_deload",
		"get_modifiers",
		"check_progression_gate",
		"get_progression_recommendation",
		"suggest_weight",
	}, names)

	withSchema := connect(t, NewServer(eng, &fakeSchemaRepo{}, "test"))
	tools, err = withSchema.ListTools(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 11)
}

func TestNewServer_CallTools(t *testing.T) {
	memStore := store.NewMemoryStore()
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)
	memStore.AddSession(history.TrainingSession{
		ID:          "s1",
		UserID:      "u1",
		Date:        now,
		Status:      history.SessionStatusCompleted,
		TotalVolume: 5000,
	})
	eng := engine.New(engine.Params{
		Store:   memStore,
		Config:  engine.DefaultConfig(),
		Metrics: metrics.NewTestManager(),
	})
	eng.SetClock(func() time.Time { return now })

	session := connect(t, NewServer(eng, nil, "test"))
	ctx := context.Background()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_fatigue",
		Arguments: map[string]any{"user_id": "u1"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"level": "fresh"`)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "start_deload",
		Arguments: map[string]any{"user_id": "u1", "manual": true, "type": "volume", "reason": "mcp test"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"reason": "mcp test"`)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "start_deload",
		Arguments: map[string]any{"user_id": "u1"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_fatigue",
		Arguments: map[string]any{"user_id": "ghost"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "user not found")
}
