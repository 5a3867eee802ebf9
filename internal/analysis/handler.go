package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/wodwise/wodwise/internal/telemetry/metrics"
	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analysis_test

// MovementExtractor is the movement canonicalization strategy. The
// deterministic Matcher always implements it; a smarter (and fallible)
// extractor can be plugged in behind the same interface.
type MovementExtractor interface {
	ExtractBatch(ctx context.Context, workouts []WorkoutRecord) (map[int][]ExtractedMovement, error)
}

// NoticeWriter can add free-form notices on top of the deterministic
// ones. Its failures never fail the analysis.
type NoticeWriter interface {
	WriteNotices(ctx context.Context, result *AnalysisResult) ([]string, error)
}

const (
	maxWorkoutsPerRequest = 500
	analysisCacheTTL      = time.Hour
	analysisCachePrefix   = "analysis::"
)

// appended when the notice writer is configured but fails
var fallbackNotices = []string{
	"review the weekly balance of volume, intensity and recovery against your goals",
	"rotate underused movements from the vocabulary into upcoming training cycles",
}

type AnalyzeRequest struct {
	Workouts        []WorkoutRecord `json:"workouts"`
	SmartExtraction bool            `json:"smartExtraction,omitempty"`
}

type AnalyzeResponse struct {
	RequestID string          `json:"requestId"`
	Analysis  *AnalysisResult `json:"analysis"`
}

type Handler struct {
	analyzer       *Analyzer
	smartExtractor MovementExtractor
	noticeWriter   NoticeWriter
	redisClient    *redis.Client
	metrics        *metrics.Manager
}

type NewHandlerParams struct {
	Analyzer       *Analyzer
	SmartExtractor MovementExtractor
	NoticeWriter   NoticeWriter
	RedisClient    *redis.Client
	Metrics        *metrics.Manager
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		analyzer:       params.Analyzer,
		smartExtractor: params.SmartExtractor,
		noticeWriter:   params.NoticeWriter,
		redisClient:    params.RedisClient,
		metrics:        params.Metrics,
	}
}

func (handler *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.analyze")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	reqBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("analyze program, read request body: %s", err)
		http.Error(w, "analyze program failed", http.StatusBadRequest)
		return
	}

	var analyzeReq AnalyzeRequest
	if err := json.Unmarshal(reqBytes, &analyzeReq); err != nil {
		log.Tracef("analyze program, unmarshal json params: %s", err)
		http.Error(w, "analyze program failed", http.StatusBadRequest)
		return
	}

	if len(analyzeReq.Workouts) == 0 {
		http.Error(w, "error, no workouts given", http.StatusBadRequest)
		return
	}
	if len(analyzeReq.Workouts) > maxWorkoutsPerRequest {
		http.Error(w, "error, too many workouts", http.StatusBadRequest)
		return
	}
	for i, workout := range analyzeReq.Workouts {
		if workout.Week < 1 || workout.Day < 1 {
			log.Tracef("analyze program, workout %d has week %d day %d", i, workout.Week, workout.Day)
			http.Error(w, "error, workout week and day must be positive", http.StatusBadRequest)
			return
		}
	}

	// identical request bytes produce an identical response, so the
	// whole response is cacheable by request digest
	cacheKey := analysisCachePrefix + pkg.Sha256Hex(reqBytes)
	if cached, ok := handler.cachedResponse(ctx, cacheKey); ok {
		handler.metrics.CounterAnalysisCacheHits.Inc()
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	var precomputed map[int][]ExtractedMovement
	if analyzeReq.SmartExtraction && handler.smartExtractor != nil {
		precomputed, err = handler.smartExtractor.ExtractBatch(ctx, analyzeReq.Workouts)
		if err != nil {
			// extractor unavailability never fails the analysis
			log.Errorf("smart movement extraction failed, falling back to matcher: %s", err)
			handler.metrics.CounterSmartExtractFallback.Inc()
			precomputed = nil
		}
	}

	result := handler.analyzer.Analyze(ctx, analyzeReq.Workouts, precomputed)
	if unrecognized := handler.unrecognizedKeys(precomputed); len(unrecognized) > 0 {
		result.Notices = append(result.Notices, fmt.Sprintf(
			"smart extraction found movements outside the vocabulary: %s", strings.Join(unrecognized, ", "),
		))
	}

	if handler.noticeWriter != nil {
		extraNotices, err := handler.noticeWriter.WriteNotices(ctx, result)
		if err != nil {
			// the deterministic notices stand, generic ones take the writer's place
			log.Errorf("notice writer failed: %s", err)
			result.Notices = append(result.Notices, fallbackNotices...)
		} else {
			result.Notices = append(result.Notices, extraNotices...)
		}
	}

	handler.metrics.CounterAnalyses.Inc()

	respBytes, err := json.Marshal(AnalyzeResponse{
		RequestID: uuid.NewString(),
		Analysis:  result,
	})
	if err != nil {
		log.Errorf("failed to marshal analysis response: %s", err)
		http.Error(w, "analyze program failed", http.StatusInternalServerError)
		return
	}

	handler.storeResponse(ctx, cacheKey, respBytes)

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) unrecognizedKeys(precomputed map[int][]ExtractedMovement) []string {
	catalog := handler.analyzer.Catalog()
	seen := make(map[string]bool)
	var unrecognized []string
	for _, movements := range precomputed {
		for _, movement := range movements {
			if seen[movement.Key] || catalog.Contains(movement.Key) {
				continue
			}
			seen[movement.Key] = true
			unrecognized = append(unrecognized, movement.Key)
		}
	}
	sort.Strings(unrecognized)
	return unrecognized
}

func (handler *Handler) cachedResponse(ctx context.Context, cacheKey string) ([]byte, bool) {
	if handler.redisClient == nil {
		return nil, false
	}
	cached, err := handler.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Errorf("failed to read analysis cache: %s", err)
		}
		return nil, false
	}
	return cached, true
}

func (handler *Handler) storeResponse(ctx context.Context, cacheKey string, respBytes []byte) {
	if handler.redisClient == nil {
		return
	}
	if err := handler.redisClient.Set(ctx, cacheKey, respBytes, analysisCacheTTL).Err(); err != nil {
		log.Errorf("failed to store analysis response in cache: %s", err)
	}
}
