package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"
	"github.com/2beens/gymcoach/internal/training/deload"
	"github.com/2beens/gymcoach/internal/training/engine"
	"github.com/2beens/gymcoach/internal/training/fatigue"
	"github.com/2beens/gymcoach/internal/training/history"
	"github.com/2beens/gymcoach/internal/training/progression"
	"github.com/2beens/gymcoach/internal/training/suggestion"
	"github.com/2beens/gymcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=api_test

type trainingEngine interface {
	ComputeFatigue(ctx context.Context, userID string, days int) (*fatigue.Result, error)
	LogFatigue(ctx context.Context, userID string, days int) (*fatigue.LogEntry, error)
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

// MsgUnavailable is the only message a caller sees for storage or other internal failures.
const MsgUnavailable = "recommendation unavailable, try again"

// maxDays bounds the days query parameter.
const maxDays = 365

type ActiveDeloadResponse struct {
	Active *deload.ActiveDeload `json:"active"`
}

type EndDeloadResponse struct {
	Ended *deload.Period `json:"ended"`
}

type FatigueTrendResponse struct {
	Entries []fatigue.LogEntry `json:"entries"`
}

type Handler struct {
	engine trainingEngine
}

func NewHandler(eng trainingEngine) *Handler {
	return &Handler{
		engine: eng,
	}
}

// Routes registers the training endpoints on the router.
func (handler *Handler) Routes(r *mux.Router) {
	users := r.PathPrefix("/training/users/{userId}").Subrouter()
	users.HandleFunc("/fatigue", handler.HandleFatigue).Methods("GET", "OPTIONS").Name("fatigue")
	users.HandleFunc("/fatigue/log", handler.HandleLogFatigue).Methods("POST", "OPTIONS").Name("fatigue-log")
	users.HandleFunc("/fatigue/trend", handler.HandleFatigueTrend).Methods("GET", "OPTIONS").Name("fatigue-trend")
	users.HandleFunc("/deload/check", handler.HandleCheckDeload).Methods("GET", "OPTIONS").Name("deload-check")
	users.HandleFunc("/deload", handler.HandleGetActiveDeload).Methods("GET", "OPTIONS").Name("deload-active")
	users.HandleFunc("/deload", handler.HandleStartDeload).Methods("POST", "OPTIONS").Name("deload-start")
	users.HandleFunc("/deload", handler.HandleEndDeload).Methods("DELETE", "OPTIONS").Name("deload-end")
	users.HandleFunc("/modifiers", handler.HandleModifiers).Methods("GET", "OPTIONS").Name("modifiers")
	users.HandleFunc("/exercises/{exerciseId}/gate", handler.HandleGate).Methods("GET", "OPTIONS").Name("progression-gate")
	users.HandleFunc("/exercises/{exerciseId}/recommendation", handler.HandleRecommendation).Methods("GET", "OPTIONS").Name("progression-recommendation")
	users.HandleFunc("/exercises/{exerciseId}/suggestion", handler.HandleSuggestion).Methods("GET", "OPTIONS").Name("weight-suggestion")
}

// writeError maps the engine errors to status codes. Internal details never reach the caller.
func writeError(w http.ResponseWriter, span trace.Span, op string, err error) {
	span.RecordError(err)
	switch {
	case errors.Is(err, history.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, history.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	case errors.Is(err, deload.ErrDeloadActive):
		http.Error(w, "a deload is already active", http.StatusConflict)
	case errors.Is(err, deload.ErrInvalidDeload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, MsgUnavailable, http.StatusInternalServerError)
	}
}

// parseDays reads the optional days query param, 0 means the configured default.
func parseDays(r *http.Request) (int, error) {
	daysStr := r.URL.Query().Get("days")
	if daysStr == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 1 || days > maxDays {
		return 0, errors.New("days must be a number between 1 and 365")
	}
	return days, nil
}

func (handler *Handler) userSpan(r *http.Request, name string) (context.Context, trace.Span, string) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), name)
	userID := mux.Vars(r)["userId"]
	span.SetAttributes(attribute.String("user.id", userID))
	return ctx, span, userID
}

func (handler *Handler) HandleFatigue(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.fatigue")
	defer span.End()

	days, err := parseDays(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := handler.engine.ComputeFatigue(ctx, userID, days)
	if err != nil {
		writeError(w, span, "compute fatigue", err)
		return
	}
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (handler *Handler) HandleLogFatigue(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.fatigue.log")
	defer span.End()

	days, err := parseDays(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := handler.engine.LogFatigue(ctx, userID, days)
	if err != nil {
		writeError(w, span, "log fatigue", err)
		return
	}
	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (handler *Handler) HandleFatigueTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.fatigue.trend")
	defer span.End()

	days, err := parseDays(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := handler.engine.FatigueTrend(ctx, userID, days)
	if err != nil {
		writeError(w, span, "fatigue trend", err)
		return
	}
	pkg.WriteJSON(w, FatigueTrendResponse{Entries: entries}, http.StatusOK)
}

func (handler *Handler) HandleCheckDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.deload.check")
	defer span.End()

	check, err := handler.engine.CheckDeloadNeeded(ctx, userID)
	if err != nil {
		writeError(w, span, "check deload", err)
		return
	}
	pkg.WriteJSON(w, check, http.StatusOK)
}

func (handler *Handler) HandleGetActiveDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.deload.active")
	defer span.End()

	active, err := handler.engine.GetActiveDeload(ctx, userID)
	if err != nil {
		writeError(w, span, "get active deload", err)
		return
	}
	pkg.WriteJSON(w, ActiveDeloadResponse{Active: active}, http.StatusOK)
}

// HandleStartDeload starts a deload. The JSON body with the manual params is optional,
// without it the engine decides the type of the deload.
func (handler *Handler) HandleStartDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.deload.start")
	defer span.End()

	var params *deload.ManualParams
	if r.Body != nil {
		var p deload.ManualParams
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debugf("start deload, unmarshal json params: %s", err)
				http.Error(w, "invalid deload params", http.StatusBadRequest)
				return
			}
		} else {
			params = &p
		}
	}

	period, err := handler.engine.StartDeload(ctx, userID, params)
	if err != nil {
		writeError(w, span, "start deload", err)
		return
	}

	log.Debugf("deload [%s] started for user [%s]", period.ID, userID)
	pkg.WriteJSON(w, period, http.StatusCreated)
}

func (handler *Handler) HandleEndDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.deload.end")
	defer span.End()

	ended, err := handler.engine.EndDeload(ctx, userID)
	if err != nil {
		writeError(w, span, "end deload", err)
		return
	}
	pkg.WriteJSON(w, EndDeloadResponse{Ended: ended}, http.StatusOK)
}

func (handler *Handler) HandleModifiers(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.modifiers")
	defer span.End()

	mods, err := handler.engine.CurrentModifiers(ctx, userID)
	if err != nil {
		writeError(w, span, "current modifiers", err)
		return
	}
	pkg.WriteJSON(w, mods, http.StatusOK)
}

func exerciseID(r *http.Request, span trace.Span) string {
	id := mux.Vars(r)["exerciseId"]
	span.SetAttributes(attribute.String("exercise.id", id))
	return id
}

func (handler *Handler) HandleGate(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.gate")
	defer span.End()

	res, err := handler.engine.CheckProgressionGate(ctx, userID, exerciseID(r, span))
	if err != nil {
		writeError(w, span, "check progression gate", err)
		return
	}
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (handler *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.recommendation")
	defer span.End()

	rec, err := handler.engine.GetProgressionRecommendation(ctx, userID, exerciseID(r, span))
	if err != nil {
		writeError(w, span, "progression recommendation", err)
		return
	}
	pkg.WriteJSON(w, rec, http.StatusOK)
}

func (handler *Handler) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span, userID := handler.userSpan(r, "handler.training.suggestion")
	defer span.End()

	s, err := handler.engine.SuggestWeight(ctx, userID, exerciseID(r, span))
	if err != nil {
		writeError(w, span, "suggest weight", err)
		return
	}
	pkg.WriteJSON(w, s, http.StatusOK)
}
