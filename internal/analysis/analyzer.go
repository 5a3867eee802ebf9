package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/internal/vocabulary"

	"go.opentelemetry.io/otel/attribute"
)

const (
	noticeNoLongWorkouts = "the program has no long time-domain workouts; consider adding at least one longer piece for aerobic capacity"
	noticeNoStrength     = "the program contains no weightlifting movements; consider adding dedicated strength work"
)

// minimum program size before the volume heuristics kick in
const noticeMinWorkouts = 5

// not-programmed movements above this total trigger the variety notice
const noticeVarietyThreshold = 20

// Analyzer aggregates per-workout classification and movement extraction
// into program-level statistics. It is a pure function of its inputs:
// analyzing the same program twice yields a byte-identical result.
type Analyzer struct {
	catalog *vocabulary.Catalog
	matcher *Matcher
}

func NewAnalyzer(catalog *vocabulary.Catalog) *Analyzer {
	return &Analyzer{
		catalog: catalog,
		matcher: NewMatcher(catalog),
	}
}

func (a *Analyzer) Matcher() *Matcher {
	return a.matcher
}

func (a *Analyzer) Catalog() *vocabulary.Catalog {
	return a.catalog
}

// Analyze runs the whole program-level aggregation. When precomputed
// per-workout extractions are supplied (keyed by workout index) they are
// trusted verbatim in place of the deterministic matcher.
func (a *Analyzer) Analyze(
	ctx context.Context,
	workouts []WorkoutRecord,
	precomputed map[int][]ExtractedMovement,
) *AnalysisResult {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.program.analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("workouts", len(workouts)))

	result := &AnalysisResult{
		ModalBalance:        make(map[vocabulary.Modality]int),
		FormatCounts:        make(map[Format]int),
		NotProgrammed:       make(map[string][]string),
		MovementFrequency:   []MovementFrequency{},
		ConsecutiveOverlaps: []Overlap{},
		Notices:             []string{},
	}

	frequency := make(map[string]int)
	loads := make(map[string][]string)
	modalities := make(map[string]vocabulary.Modality)
	perWorkoutMovements := make([][]ExtractedMovement, len(workouts))

	for i, workout := range workouts {
		movements, ok := precomputed[i]
		if !ok {
			movements = a.matcher.Extract(workout.Text)
		}
		perWorkoutMovements[i] = movements

		cls := Classify(workout.Text)
		result.FormatCounts[cls.Format]++

		for _, movement := range movements {
			result.ModalBalance[movement.Modality]++
			frequency[movement.Key]++
			modalities[movement.Key] = movement.Modality
			if movement.Load != "" && !containsString(loads[movement.Key], movement.Load) {
				loads[movement.Key] = append(loads[movement.Key], movement.Load)
			}
		}

		if cls.Format == FormatStrength {
			// strength work is excluded from time-domain and structure stats
			continue
		}

		switch cls.TimeDomain {
		case TimeDomainShort:
			result.TimeDomainCounts.Short++
		case TimeDomainMedium:
			result.TimeDomainCounts.Medium++
		case TimeDomainLong:
			result.TimeDomainCounts.Long++
		}

		switch StructureFor(cls.Format, len(movements)) {
		case StructureCouplet:
			result.StructureCounts.Couplets++
		case StructureTriplet:
			result.StructureCounts.Triplets++
		case StructureChipper:
			result.StructureCounts.Chippers++
		default:
			result.StructureCounts.Other++
		}
	}

	result.MovementFrequency = buildFrequencyList(frequency, modalities, loads)
	result.NotProgrammed = a.notProgrammed(frequency)
	result.ConsecutiveOverlaps = consecutiveOverlaps(workouts, perWorkoutMovements)
	result.Notices = a.buildNotices(result, len(workouts))

	return result
}

func buildFrequencyList(
	frequency map[string]int,
	modalities map[string]vocabulary.Modality,
	loads map[string][]string,
) []MovementFrequency {
	list := make([]MovementFrequency, 0, len(frequency))
	for key, count := range frequency {
		list = append(list, MovementFrequency{
			Key:      key,
			Count:    count,
			Modality: modalities[key],
			Loads:    loads[key],
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Key < list[j].Key
	})
	return list
}

// notProgrammed lists, per category, every vocabulary movement the program
// never touches - the "movements you're neglecting" view.
func (a *Analyzer) notProgrammed(observed map[string]int) map[string][]string {
	byCategory := make(map[string][]string)
	for _, movement := range a.catalog.Movements() {
		if _, ok := observed[movement.Key]; ok {
			continue
		}
		byCategory[movement.Category] = append(byCategory[movement.Category], movement.Key)
	}
	// catalog.Movements() is key-ordered, so each category list is already sorted
	return byCategory
}

// consecutiveOverlaps walks the program in (week, day) order and flags
// shared movements on back-to-back days of the same week.
func consecutiveOverlaps(workouts []WorkoutRecord, movements [][]ExtractedMovement) []Overlap {
	indices := make([]int, len(workouts))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		a, b := workouts[indices[i]], workouts[indices[j]]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		return a.Day < b.Day
	})

	overlaps := []Overlap{}
	for i := 1; i < len(indices); i++ {
		prev, curr := workouts[indices[i-1]], workouts[indices[i]]
		if prev.Week != curr.Week || curr.Day != prev.Day+1 {
			continue
		}

		shared := intersectKeys(movements[indices[i-1]], movements[indices[i]])
		if len(shared) == 0 {
			continue
		}

		overlaps = append(overlaps, Overlap{
			Week:            prev.Week,
			Days:            fmt.Sprintf("%s-%s", WeekdayAbbrev(prev.Day), WeekdayAbbrev(curr.Day)),
			SharedMovements: shared,
		})
	}
	return overlaps
}

func intersectKeys(a, b []ExtractedMovement) []string {
	inA := make(map[string]bool, len(a))
	for _, movement := range a {
		inA[movement.Key] = true
	}
	var shared []string
	for _, movement := range b {
		if inA[movement.Key] {
			shared = append(shared, movement.Key)
			inA[movement.Key] = false
		}
	}
	sort.Strings(shared)
	return shared
}

// buildNotices appends the deterministic heuristics in a fixed order;
// an external notice writer may only add to the list afterwards.
func (a *Analyzer) buildNotices(result *AnalysisResult, workoutCount int) []string {
	notices := []string{}

	if workoutCount >= noticeMinWorkouts && result.TimeDomainCounts.Long == 0 {
		notices = append(notices, noticeNoLongWorkouts)
	}
	if workoutCount >= noticeMinWorkouts && result.ModalBalance[vocabulary.ModalityWeightlifting] == 0 {
		notices = append(notices, noticeNoStrength)
	}
	if n := len(result.ConsecutiveOverlaps); n > 0 {
		notices = append(notices, fmt.Sprintf(
			"found %d consecutive-day movement overlap(s); consider spacing repeated movements out for recovery", n,
		))
	}

	notProgrammedTotal := 0
	for _, keys := range result.NotProgrammed {
		notProgrammedTotal += len(keys)
	}
	if notProgrammedTotal > noticeVarietyThreshold {
		notices = append(notices, fmt.Sprintf(
			"%d vocabulary movements never show up in the program; consider rotating in more variety", notProgrammedTotal,
		))
	}

	return notices
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
