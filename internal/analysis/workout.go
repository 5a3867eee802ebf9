package analysis

import (
	"fmt"

	"github.com/wodwise/wodwise/internal/vocabulary"
)

// WorkoutRecord is one programmed workout as the caller wrote it down.
// Week and Day are 1-based; Day is a weekday number (1..7).
type WorkoutRecord struct {
	Week    int    `json:"week"`
	Day     int    `json:"day"`
	Text    string `json:"text"`
	Ordinal int    `json:"ordinal,omitempty"`
}

// ExtractedMovement is one distinct movement found in a workout. Load is
// free-form ("95/65", "BW", "70%"); the deterministic matcher leaves it
// empty, only the smart extractor fills it in.
type ExtractedMovement struct {
	Key      string              `json:"key"`
	Modality vocabulary.Modality `json:"modality"`
	Load     string              `json:"load,omitempty"`
}

type Format string

const (
	FormatAMRAP    Format = "AMRAP"
	FormatForTime  Format = "For Time"
	FormatRFT      Format = "RFT"
	FormatEMOM     Format = "EMOM"
	FormatDeathBy  Format = "Death By"
	FormatTabata   Format = "Tabata"
	FormatBuyIn    Format = "Buy-In/Cash-Out"
	FormatStrength Format = "Strength"
	FormatOther    Format = "Other"
)

type TimeDomain string

const (
	TimeDomainShort  TimeDomain = "short"
	TimeDomainMedium TimeDomain = "medium"
	TimeDomainLong   TimeDomain = "long"
	// TimeDomainNone marks workouts excluded from time-domain counting (strength work)
	TimeDomainNone TimeDomain = ""
)

type Structure string

const (
	StructureCouplet Structure = "couplet"
	StructureTriplet Structure = "triplet"
	StructureChipper Structure = "chipper"
	StructureOther   Structure = "other"
)

type TimeDomainCounts struct {
	Short  int `json:"short"`
	Medium int `json:"medium"`
	Long   int `json:"long"`
}

type StructureCounts struct {
	Couplets int `json:"couplets"`
	Triplets int `json:"triplets"`
	Chippers int `json:"chippers"`
	Other    int `json:"other"`
}

type MovementFrequency struct {
	Key      string              `json:"key"`
	Count    int                 `json:"count"`
	Modality vocabulary.Modality `json:"modality"`
	Loads    []string            `json:"loads,omitempty"`
}

// Overlap flags the same movement showing up on two consecutive training
// days of the same week - a recovery smell.
type Overlap struct {
	Week            int      `json:"week"`
	Days            string   `json:"days"`
	SharedMovements []string `json:"sharedMovements"`
}

// AnalysisResult is the full program-level aggregate. It is built fresh on
// every analysis call and never mutated afterwards; identical input
// produces a byte-identical result.
type AnalysisResult struct {
	ModalBalance        map[vocabulary.Modality]int `json:"modalBalance"`
	TimeDomainCounts    TimeDomainCounts            `json:"timeDomainCounts"`
	StructureCounts     StructureCounts             `json:"structureCounts"`
	FormatCounts        map[Format]int              `json:"formatCounts"`
	MovementFrequency   []MovementFrequency         `json:"movementFrequency"`
	NotProgrammed       map[string][]string         `json:"notProgrammed"`
	ConsecutiveOverlaps []Overlap                   `json:"consecutiveOverlaps"`
	Notices             []string                    `json:"notices"`
}

var weekdayAbbrevs = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayAbbrev maps a day number (1..7) to its weekday abbreviation.
// Out-of-range days fall back to the raw number rendering of "Day N".
func WeekdayAbbrev(day int) string {
	if day >= 1 && day <= len(weekdayAbbrevs) {
		return weekdayAbbrevs[day-1]
	}
	return fmt.Sprintf("Day %d", day)
}
