package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/engine"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/progression"
	"github.com/2beens/gymcoach/internal/training/suggestion"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// trainingEngine is the part of the engine the tools expose.
type trainingEngine interface {
	ComputeFatigue(ctx context.Context, userID string, days int) (*fatigue.Result, error)
	FatigueTrend(ctx context.Context, userID string, days int) ([]fatigue.LogEntry, error)
	CheckDeloadNeeded(ctx context.Context, userID string) (*engine.DeloadCheck, error)
	StartDeload(ctx context.Context, userID string, params *deload.ManualParams) (*deload.Period, error)
	GetActiveDeload(ctx context.Context, userID string) (*deload.ActiveDeload, error)
	EndDeload(ctx context.Context, userID string) (*deload.Period, error)
	CurrentModifiers(ctx context.Context, userID string) (*deload.Modifiers, error)
	CheckProgressionGate(ctx context.Context, userID, exerciseID string) (*progression.GateResult, error)
	GetProgressionRecommendation(ctx context.Context, userID, exerciseID string) (*progression.Recommendation, error)
	SuggestWeight(ctx context.Context, userID, exerciseID string) (*suggestion.WeightSuggestion, error)
}

// Handler handles MCP tool requests: parses the input, calls the engine, formats the MCP result.
type Handler struct {
	engine trainingEngine
	schema SchemaRepo
}

// NewHandler builds a handler. The schema repo is optional.
func NewHandler(eng trainingEngine, schema SchemaRepo) *Handler {
	return &Handler{
		engine: eng,
		schema: schema,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// UserInput is the input of the tools working on a user.
type UserInput struct {
	UserID string `json:"user_id" jsonschema:"The user id"`
}

// FatigueInput is the input for get_fatigue and get_fatigue_trend.
type FatigueInput struct {
	UserID string `json:"user_id" jsonschema:"The user id"`
	Days   int    `json:"days,omitempty" jsonschema:"Lookback window in days, defaults to the configured window (7 for the score)"`
}

// ExerciseInput is the input of the per exercise tools.
type ExerciseInput struct {
	UserID     string `json:"user_id" jsonschema:"The user id"`
	ExerciseID string `json:"exercise_id" jsonschema:"The exercise id within the user's program (e.g. squat)"`
}

// StartDeloadInput is the input for start_deload. Everything but the user is optional.
type StartDeloadInput struct {
	UserID            string  `json:"user_id" jsonschema:"The user id"`
	Manual            bool    `json:"manual,omitempty" jsonschema:"Start a manual deload with the given params instead of the recommended one"`
	Type              string  `json:"type,omitempty" jsonschema:"Deload type: volume, intensity or combined"`
	Reason            string  `json:"reason,omitempty" jsonschema:"Why the deload is started"`
	DurationDays      int     `json:"duration_days,omitempty" jsonschema:"Length of the deload in days"`
	VolumeModifier    float64 `json:"volume_modifier,omitempty" jsonschema:"Multiplier of the number of sets, in (0,1]"`
	IntensityModifier float64 `json:"intensity_modifier,omitempty" jsonschema:"Multiplier of the working weights, in (0,1]"`
}

// NoInput is the input of the tools without arguments.
type NoInput struct{}

// GetTrainingContextTool returns the MCP tool handler for get_training_context.
func (h *Handler) GetTrainingContextTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		cols, err := h.schema.GetTrainingColumns(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(FormatSchema(cols)), nil, nil
	}
}

func (h *Handler) GetFatigueTool() func(context.Context, *mcp.CallToolRequest, FatigueInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in FatigueInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		res, err := h.engine.ComputeFatigue(ctx, in.UserID, in.Days)
		if err != nil {
			return errorResult("Error computing fatigue: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}

func (h *Handler) GetFatigueTrendTool() func(context.Context, *mcp.CallToolRequest, FatigueInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in FatigueInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		entries, err := h.engine.FatigueTrend(ctx, in.UserID, in.Days)
		if err != nil {
			return errorResult("Error fetching fatigue trend: " + err.Error()), nil, nil
		}
		return jsonResult(entries), nil, nil
	}
}

func (h *Handler) CheckDeloadTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		check, err := h.engine.CheckDeloadNeeded(ctx, in.UserID)
		if err != nil {
			return errorResult("Error checking deload: " + err.Error()), nil, nil
		}
		return jsonResult(check), nil, nil
	}
}

func (h *Handler) GetActiveDeloadTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		active, err := h.engine.GetActiveDeload(ctx, in.UserID)
		if err != nil {
			return errorResult("Error fetching active deload: " + err.Error()), nil, nil
		}
		if active == nil {
			return textResult("No active deload."), nil, nil
		}
		return jsonResult(active), nil, nil
	}
}

func (h *Handler) StartDeloadTool() func(context.Context, *mcp.CallToolRequest, StartDeloadInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StartDeloadInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}

		var params *deload.ManualParams
		if in.Manual {
			params = &deload.ManualParams{
				Type:              deload.Type(in.Type),
				Reason:            in.Reason,
				DurationDays:      in.DurationDays,
				VolumeModifier:    in.VolumeModifier,
				IntensityModifier: in.IntensityModifier,
			}
		}

		period, err := h.engine.StartDeload(ctx, in.UserID, params)
		if err != nil {
			return errorResult("Error starting deload: " + err.Error()), nil, nil
		}
		return jsonResult(period), nil, nil
	}
}

func (h *Handler) EndDeloadTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		ended, err := h.engine.EndDeload(ctx, in.UserID)
		if err != nil {
			return errorResult("Error ending deload: " + err.Error()), nil, nil
		}
		if ended == nil {
			return textResult("No active deload to end."), nil, nil
		}
		return jsonResult(ended), nil, nil
	}
}

func (h *Handler) GetModifiersTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID == "" {
			return errorResult("user_id is required"), nil, nil
		}
		mods, err := h.engine.CurrentModifiers(ctx, in.UserID)
		if err != nil {
			return errorResult("Error fetching modifiers: " + err.Error()), nil, nil
		}
		return jsonResult(mods), nil, nil
	}
}

func (in ExerciseInput) validate() *mcp.CallToolResult {
	if in.UserID == "" || in.ExerciseID == "" {
		return errorResult("user_id and exercise_id are required")
	}
	return nil
}

func (h *Handler) CheckProgressionGateTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if res := in.validate(); res != nil {
			return res, nil, nil
		}
		gate, err := h.engine.CheckProgressionGate(ctx, in.UserID, in.ExerciseID)
		if err != nil {
			return errorResult("Error checking progression gate: " + err.Error()), nil, nil
		}
		return jsonResult(gate), nil, nil
	}
}

func (h *Handler) GetProgressionRecommendationTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if res := in.validate(); res != nil {
			return res, nil, nil
		}
		rec, err := h.engine.GetProgressionRecommendation(ctx, in.UserID, in.ExerciseID)
		if err != nil {
			return errorResult("Error fetching recommendation: " + err.Error()), nil, nil
		}
		return jsonResult(rec), nil, nil
	}
}

func (h *Handler) SuggestWeightTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if res := in.validate(); res != nil {
			return res, nil, nil
		}
		s, err := h.engine.SuggestWeight(ctx, in.UserID, in.ExerciseID)
		if err != nil {
			return errorResult("Error suggesting weight: " + err.Error()), nil, nil
		}
		return jsonResult(s), nil, nil
	}
}
