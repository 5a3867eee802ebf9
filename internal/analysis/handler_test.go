package analysis_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wodwise/wodwise/internal/analysis"
	"github.com/wodwise/wodwise/internal/telemetry/metrics"
	"github.com/wodwise/wodwise/internal/vocabulary"
	"github.com/wodwise/wodwise/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzeRequest(t *testing.T, analyzeReq analysis.AnalyzeRequest) (*http.Request, []byte) {
	t.Helper()
	reqJson, err := json.Marshal(analyzeReq)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", "/analysis", bytes.NewReader(reqJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req, reqJson
}

func TestHandler_HandleAnalyze(t *testing.T) {
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer: analysis.NewAnalyzer(vocabulary.Default()),
		Metrics:  metrics.NewTestManager(),
	})

	req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts: []analysis.WorkoutRecord{
			{Week: 1, Day: 1, Text: "AMRAP 12: 10 thrusters, 10 pull-ups"},
			{Week: 1, Day: 3, Text: "Back Squat 5x5 @ 80%"},
		},
	})
	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, 1, resp.Analysis.FormatCounts[analysis.FormatAMRAP])
	assert.Equal(t, 1, resp.Analysis.FormatCounts[analysis.FormatStrength])
	assert.Equal(t, 2, resp.Analysis.ModalBalance[vocabulary.ModalityWeightlifting])
}

func TestHandler_HandleAnalyze_BadRequests(t *testing.T) {
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer: analysis.NewAnalyzer(vocabulary.Default()),
		Metrics:  metrics.NewTestManager(),
	})

	t.Run("wrong content type", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/analysis", bytes.NewReader([]byte("{}")))
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		handler.HandleAnalyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no workouts", func(t *testing.T) {
		req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{})
		rec := httptest.NewRecorder()
		handler.HandleAnalyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid week and day", func(t *testing.T) {
		req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
			Workouts: []analysis.WorkoutRecord{
				{Week: 0, Day: 1, Text: "AMRAP 10"},
			},
		})
		rec := httptest.NewRecorder()
		handler.HandleAnalyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too many workouts", func(t *testing.T) {
		workouts := make([]analysis.WorkoutRecord, 501)
		for i := range workouts {
			workouts[i] = analysis.WorkoutRecord{
				Week: 1 + i/7,
				Day:  1 + i%7,
				Text: gofakeit.Sentence(8),
			}
		}
		req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{Workouts: workouts})
		rec := httptest.NewRecorder()
		handler.HandleAnalyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("garbage json", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/analysis", bytes.NewReader([]byte("<workouts/>")))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.HandleAnalyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_HandleAnalyze_CachedResponse(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	t.Cleanup(func() { _ = redisClient.Close() })
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:    analysis.NewAnalyzer(vocabulary.Default()),
		RedisClient: redisClient,
		Metrics:     metrics.NewTestManager(),
	})

	req, reqJson := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts: []analysis.WorkoutRecord{
			{Week: 1, Day: 1, Text: "For Time: 30 burpees"},
		},
	})
	cacheKey := "analysis::" + pkg.Sha256Hex(reqJson)

	redisMock.ExpectGet(cacheKey).SetErr(redis.Nil)
	redisMock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	firstBody := rec.Body.Bytes()

	// second identical request comes straight from the cache
	redisMock.ExpectGet(cacheKey).SetVal(string(firstBody))

	req2, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts: []analysis.WorkoutRecord{
			{Week: 1, Day: 1, Text: "For Time: 30 burpees"},
		},
	})
	rec2 := httptest.NewRecorder()
	handler.HandleAnalyze(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, firstBody, rec2.Body.Bytes())

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestHandler_HandleAnalyze_SmartExtraction(t *testing.T) {
	ctrl := gomock.NewController(t)
	extractorMock := NewMockMovementExtractor(ctrl)
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:       analysis.NewAnalyzer(vocabulary.Default()),
		SmartExtractor: extractorMock,
		Metrics:        metrics.NewTestManager(),
	})

	workouts := []analysis.WorkoutRecord{
		{Week: 1, Day: 1, Text: "the coach's handwriting, illegible"},
	}
	extractorMock.EXPECT().
		ExtractBatch(gomock.Any(), workouts).
		Return(map[int][]analysis.ExtractedMovement{
			0: {{Key: "snatch", Modality: vocabulary.ModalityWeightlifting, Load: "60%"}},
		}, nil)

	req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts:        workouts,
		SmartExtraction: true,
	})
	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Analysis.MovementFrequency, 1)
	assert.Equal(t, "snatch", resp.Analysis.MovementFrequency[0].Key)
	assert.Equal(t, []string{"60%"}, resp.Analysis.MovementFrequency[0].Loads)
}

func TestHandler_HandleAnalyze_SmartExtractionFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	extractorMock := NewMockMovementExtractor(ctrl)
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:       analysis.NewAnalyzer(vocabulary.Default()),
		SmartExtractor: extractorMock,
		Metrics:        metrics.NewTestManager(),
	})

	workouts := []analysis.WorkoutRecord{
		{Week: 1, Day: 1, Text: "AMRAP 12: 10 thrusters"},
	}
	extractorMock.EXPECT().
		ExtractBatch(gomock.Any(), workouts).
		Return(nil, errors.New("extractor unavailable"))

	req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts:        workouts,
		SmartExtraction: true,
	})
	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// deterministic matching still extracted the thruster
	require.Len(t, resp.Analysis.MovementFrequency, 1)
	assert.Equal(t, "thruster", resp.Analysis.MovementFrequency[0].Key)
}

func TestHandler_HandleAnalyze_UnrecognizedExtractorMovements(t *testing.T) {
	ctrl := gomock.NewController(t)
	extractorMock := NewMockMovementExtractor(ctrl)
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:       analysis.NewAnalyzer(vocabulary.Default()),
		SmartExtractor: extractorMock,
		Metrics:        metrics.NewTestManager(),
	})

	workouts := []analysis.WorkoutRecord{
		{Week: 1, Day: 1, Text: "3 rounds of the new thing"},
	}
	extractorMock.EXPECT().
		ExtractBatch(gomock.Any(), workouts).
		Return(map[int][]analysis.ExtractedMovement{
			0: {
				{Key: "thruster", Modality: vocabulary.ModalityWeightlifting},
				{Key: "zercher_carry", Modality: vocabulary.ModalityWeightlifting},
			},
		}, nil)

	req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts:        workouts,
		SmartExtraction: true,
	})
	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.Analysis.Notices)
	last := resp.Analysis.Notices[len(resp.Analysis.Notices)-1]
	assert.Contains(t, last, "outside the vocabulary")
	assert.Contains(t, last, "zercher_carry")
	assert.NotContains(t, last, "thruster")
}

func TestHandler_HandleAnalyze_NoticeWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	noticeWriterMock := NewMockNoticeWriter(ctrl)
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:     analysis.NewAnalyzer(vocabulary.Default()),
		NoticeWriter: noticeWriterMock,
		Metrics:      metrics.NewTestManager(),
	})

	noticeWriterMock.EXPECT().
		WriteNotices(gomock.Any(), gomock.Any()).
		Return([]string{"consider a dedicated engine day"}, nil)

	req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts: []analysis.WorkoutRecord{
			{Week: 1, Day: 1, Text: "AMRAP 12: 10 thrusters"},
		},
	})
	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Analysis.Notices)
	assert.Equal(t, "consider a dedicated engine day",
		resp.Analysis.Notices[len(resp.Analysis.Notices)-1])
}

func TestHandler_HandleAnalyze_NoticeWriterFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	noticeWriterMock := NewMockNoticeWriter(ctrl)
	handler := analysis.NewHandler(analysis.NewHandlerParams{
		Analyzer:     analysis.NewAnalyzer(vocabulary.Default()),
		NoticeWriter: noticeWriterMock,
		Metrics:      metrics.NewTestManager(),
	})

	noticeWriterMock.EXPECT().
		WriteNotices(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("notices service down"))

	req, _ := newAnalyzeRequest(t, analysis.AnalyzeRequest{
		Workouts: []analysis.WorkoutRecord{
			{Week: 1, Day: 1, Text: "AMRAP 12: 10 thrusters"},
		},
	})
	rec := httptest.NewRecorder()
	handler.HandleAnalyze(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// the fixed generic pair takes the writer's place
	require.GreaterOrEqual(t, len(resp.Analysis.Notices), 2)
	notices := resp.Analysis.Notices
	assert.Contains(t, notices[len(notices)-2], "volume, intensity and recovery")
	assert.Contains(t, notices[len(notices)-1], "underused movements")
}
