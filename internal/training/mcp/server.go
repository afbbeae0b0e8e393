package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the training engine as tools. The server is used
// over stdio by cmd/training_mcp and mounted at /mcp over HTTP by the service.
// With a nil schema repo the get_training_context tool is left out.
func NewServer(eng trainingEngine, schema SchemaRepo, version string) *mcp.Server {
	h := NewHandler(eng, schema)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymcoach-training",
		Version: version,
	}, nil)

	if schema != nil {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "get_training_context",
			Description: "Returns the DB schema of the training tables (sessions, recovery check-ins, exercise slots and sets, fatigue log, deload periods). Use when you need to know what data the engine works on.",
		}, h.GetTrainingContextTool())
	}

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fatigue",
		Description: "Computes the fatigue score (0-10) of a user with its five factors (rpe creep, performance drop, recovery debt, volume load, streak), status band and recommendations. Args: user_id; optional: days.",
	}, h.GetFatigueTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fatigue_trend",
		Description: "Returns the logged daily fatigue scores of a user, newest first. Args: user_id; optional: days (default 7, max 365).",
	}, h.GetFatigueTrendTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_deload",
		Description: "Decides whether the user should start a deload now and why. Never changes anything. Arg: user_id.",
	}, h.CheckDeloadTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_active_deload",
		Description: "Returns the active deload period of a user with the days remaining, if any. Arg: user_id.",
	}, h.GetActiveDeloadTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "start_deload",
		Description: "Starts a deload for the user: the recommended one, or a manual one when manual is set (type, reason, duration_days, volume_modifier, intensity_modifier are optional). Fails while another deload is active.",
	}, h.StartDeloadTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "end_deload",
		Description: "Ends the active deload of the user early. Arg: user_id.",
	}, h.EndDeloadTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_modifiers",
		Description: "Returns today's volume and intensity multipliers of a user: the active deload combined with the return-from-break reduction. Arg: user_id.",
	}, h.GetModifiersTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "check_progression_gate",
		Description: "Checks whether an exercise may increase load now, and if not, what blocks it (fatigue, performance or recovery). Args: user_id, exercise_id.",
	}, h.CheckProgressionGateTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_progression_recommendation",
		Description: "Returns the progression status of an exercise (ready, maintain, plateau, regress) with the suggested next weight. Args: user_id, exercise_id.",
	}, h.GetProgressionRecommendationTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_weight",
		Description: "Prescribes the next session of an exercise: weight, reps, target RPE, sets and rest, with deload and break modifiers applied. Args: user_id, exercise_id.",
	}, h.SuggestWeightTool())

	return s
}
