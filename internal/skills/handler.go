package skills

import (
	"encoding/json"
	"net/http"

	"github.com/wodwise/wodwise/internal/telemetry/metrics"
	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/internal/vocabulary"
	"github.com/wodwise/wodwise/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxTotalWeeks  = 52
	maxDaysPerWeek = 7
)

type PlanRequest struct {
	SkillLevels map[string]string `json:"skillLevels"`
	TotalWeeks  int               `json:"totalWeeks,omitempty"`
	DaysPerWeek int               `json:"daysPerWeek,omitempty"`
}

type PlanResponse struct {
	RequestID  string     `json:"requestId"`
	Priorities []Priority `json:"priorities"`
	Schedule   []Slot     `json:"schedule"`
}

type Handler struct {
	ranker  *Ranker
	catalog *vocabulary.Catalog
	metrics *metrics.Manager
}

func NewHandler(ranker *Ranker, catalog *vocabulary.Catalog, metrics *metrics.Manager) *Handler {
	return &Handler{
		ranker:  ranker,
		catalog: catalog,
		metrics: metrics,
	}
}

func (handler *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.skills.plan")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var planReq PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&planReq); err != nil {
		log.Tracef("plan skills, unmarshal json params: %s", err)
		http.Error(w, "plan skills failed", http.StatusBadRequest)
		return
	}

	if len(planReq.SkillLevels) == 0 {
		http.Error(w, "error, no skill levels given", http.StatusBadRequest)
		return
	}

	totalWeeks := planReq.TotalWeeks
	if totalWeeks == 0 {
		totalWeeks = DefaultTotalWeeks
	}
	daysPerWeek := planReq.DaysPerWeek
	if daysPerWeek == 0 {
		daysPerWeek = DefaultDaysPerWeek
	}
	if totalWeeks < 1 || totalWeeks > maxTotalWeeks {
		http.Error(w, "error, total weeks out of range", http.StatusBadRequest)
		return
	}
	if daysPerWeek < 1 || daysPerWeek > maxDaysPerWeek {
		http.Error(w, "error, days per week out of range", http.StatusBadRequest)
		return
	}

	skillLevels := make(map[string]Level, len(planReq.SkillLevels))
	for key, level := range planReq.SkillLevels {
		skillLevels[key] = ParseLevel(level)
	}

	priorities := handler.ranker.Rank(skillLevels, handler.catalog.CompetitionCounts())
	schedule := BuildSchedule(priorities, totalWeeks, daysPerWeek)

	span.SetAttributes(
		attribute.Int("priorities", len(priorities)),
		attribute.Int("slots", len(schedule)),
	)
	handler.metrics.CounterSkillPlans.Inc()

	planRespJson, err := json.Marshal(PlanResponse{
		RequestID:  uuid.NewString(),
		Priorities: priorities,
		Schedule:   schedule,
	})
	if err != nil {
		log.Errorf("failed to marshal skills plan response: %s", err)
		http.Error(w, "plan skills failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planRespJson)
}
