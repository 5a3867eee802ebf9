package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wodwise/wodwise/internal/analysis"
	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/internal/vocabulary"
	"github.com/wodwise/wodwise/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/multierr"
)

const (
	oneHour            = 60 * 60
	extractCacheExpire = oneHour * 24

	extractCachePrefix = "extract::"
)

const extractorSystemPrompt = `You extract movements from strength-and-conditioning workout text.
For every workout you receive you return the distinct movements it contains.
Use the canonical movement keys from this list whenever one applies:
%s
If a movement is not in the list, invent a snake_case key for it.
Per movement report: key, modality (weightlifting|gymnastics|monostructural), and the prescribed load as written ("95/65", "70%%", "BW", "" when none).
Respond with STRICT JSON only, no prose, no code fences, in the shape:
[{"id": 0, "movements": [{"key": "thruster", "modality": "weightlifting", "load": "95/65"}]}]`

// Extractor is the higher-accuracy movement extraction strategy: a chat
// model reads the workout text and reports movements with loads, which
// the deterministic matcher cannot do. Per-workout results are cached
// in-process keyed by the text digest.
type Extractor struct {
	client  *Client
	catalog *vocabulary.Catalog
	cache   *freecache.Cache
}

func NewExtractor(client *Client, catalog *vocabulary.Catalog) *Extractor {
	megabyte := 1024 * 1024
	return &Extractor{
		client:  client,
		catalog: catalog,
		cache:   freecache.NewCache(10 * megabyte),
	}
}

type extractedWorkout struct {
	ID        int `json:"id"`
	Movements []struct {
		Key      string `json:"key"`
		Modality string `json:"modality"`
		Load     string `json:"load"`
	} `json:"movements"`
}

// ExtractBatch implements the movement extraction strategy of the
// analysis handler. Workouts missing from the returned map fall back to
// the deterministic matcher in the caller.
func (e *Extractor) ExtractBatch(ctx context.Context, workouts []analysis.WorkoutRecord) (_ map[int][]analysis.ExtractedMovement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "llm.extractor.extractBatch")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	extracted := make(map[int][]analysis.ExtractedMovement, len(workouts))

	var uncached []int
	for i, workout := range workouts {
		if movements, ok := e.cachedMovements(workout.Text); ok {
			extracted[i] = movements
			continue
		}
		uncached = append(uncached, i)
	}
	if len(uncached) == 0 {
		return extracted, nil
	}

	userPrompt, err := buildUserPrompt(workouts, uncached)
	if err != nil {
		return nil, fmt.Errorf("build extraction prompt: %w", err)
	}

	systemPrompt := fmt.Sprintf(extractorSystemPrompt, strings.Join(e.catalog.Keys(), ", "))
	reply, err := e.client.SimpleChat(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("chat extraction: %w", err)
	}

	var extractedWorkouts []extractedWorkout
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &extractedWorkouts); err != nil {
		return nil, fmt.Errorf("unmarshal extraction reply: %w", err)
	}

	var parseErrs error
	for _, ew := range extractedWorkouts {
		if ew.ID < 0 || ew.ID >= len(workouts) {
			parseErrs = multierr.Append(parseErrs, fmt.Errorf("extraction reply names unknown workout id %d", ew.ID))
			continue
		}
		movements := e.normalizeMovements(ew)
		extracted[ew.ID] = movements
		e.storeMovements(workouts[ew.ID].Text, movements)
	}

	if parseErrs != nil {
		// usable workouts stay, the rest fall back in the caller
		log.Errorf("movement extraction reply partially unusable: %s", parseErrs)
	}

	return extracted, nil
}

// normalizeMovements maps reply movements onto the vocabulary: aliases
// resolve to their canonical key, known keys take the catalog modality,
// unknown keys stay as reported with a synthesized snake_case name.
func (e *Extractor) normalizeMovements(ew extractedWorkout) []analysis.ExtractedMovement {
	seen := make(map[string]bool, len(ew.Movements))
	movements := make([]analysis.ExtractedMovement, 0, len(ew.Movements))
	for _, m := range ew.Movements {
		key := strings.ReplaceAll(vocabulary.NormalizePhrase(m.Key), " ", "_")
		if key == "" {
			continue
		}
		if resolved, ok := e.catalog.Resolve(strings.ReplaceAll(key, "_", " ")); ok {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		modality := vocabulary.ParseModality(m.Modality)
		if movement, ok := e.catalog.Movement(key); ok {
			modality = movement.Modality
		}
		movements = append(movements, analysis.ExtractedMovement{
			Key:      key,
			Modality: modality,
			Load:     strings.TrimSpace(m.Load),
		})
	}
	return movements
}

func buildUserPrompt(workouts []analysis.WorkoutRecord, uncached []int) (string, error) {
	type promptWorkout struct {
		ID   int    `json:"id"`
		Text string `json:"text"`
	}
	promptWorkouts := make([]promptWorkout, 0, len(uncached))
	for _, i := range uncached {
		promptWorkouts = append(promptWorkouts, promptWorkout{ID: i, Text: workouts[i].Text})
	}
	promptJson, err := json.Marshal(promptWorkouts)
	if err != nil {
		return "", err
	}
	return string(promptJson), nil
}

func stripCodeFences(reply string) string {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}

func (e *Extractor) cachedMovements(text string) ([]analysis.ExtractedMovement, bool) {
	cacheKey := extractCachePrefix + pkg.Sha256Hex([]byte(text))
	movementsBytes, err := e.cache.Get([]byte(cacheKey))
	if err != nil {
		return nil, false
	}
	var movements []analysis.ExtractedMovement
	if err := json.Unmarshal(movementsBytes, &movements); err != nil {
		log.Errorf("failed to unmarshal cached extraction: %s", err)
		return nil, false
	}
	return movements, true
}

func (e *Extractor) storeMovements(text string, movements []analysis.ExtractedMovement) {
	movementsBytes, err := json.Marshal(movements)
	if err != nil {
		log.Errorf("failed to marshal extraction for cache: %s", err)
		return
	}
	cacheKey := extractCachePrefix + pkg.Sha256Hex([]byte(text))
	if err := e.cache.Set([]byte(cacheKey), movementsBytes, extractCacheExpire); err != nil {
		log.Errorf("failed to cache extraction: %s", err)
	}
}
