package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Format cues are checked in a fixed priority order because real workout
// text routinely triggers several of them at once (a strength percentage
// inside an AMRAP description, say). Do not reorder.
var (
	reRoundsForTime = regexp.MustCompile(`(\d+)\s*(?:ROUNDS?\s+FOR\s+TIME|RFT)`)
	reEMOM          = regexp.MustCompile(`\bE(\d*)MOM\b`)
	reEveryMin      = regexp.MustCompile(`EVERY\s+(\d+)\s*MIN`)
	reRepScheme     = regexp.MustCompile(`\d+\s*X\s*\d+`)
	rePercentLoad   = regexp.MustCompile(`@\s*\d+\s*%`)

	reAMRAPMinutes = regexp.MustCompile(`AMRAP\s*(\d+)`)
	reEMOMMinutes  = regexp.MustCompile(`EMOM\s*(\d+)`)
	reMinutes      = regexp.MustCompile(`(\d+)\s*MIN`)
)

const (
	defaultAMRAPMinutes = 10
	defaultRounds       = 5
	defaultEMOMMinutes  = 10
)

type Classification struct {
	Format     Format
	TimeDomain TimeDomain
}

// Classify determines the workout format and its time-domain bucket.
// Strength work carries no time domain. Movement-count based structure
// classification lives in StructureFor since the caller already holds
// the extracted movement set.
func Classify(text string) Classification {
	up := strings.ToUpper(text)

	switch {
	case strings.Contains(up, "AMRAP"), strings.Contains(up, "AS MANY ROUNDS"):
		return Classification{
			Format:     FormatAMRAP,
			TimeDomain: amrapTimeDomain(up),
		}
	case strings.Contains(up, "FOR TIME"), reRoundsForTime.MatchString(up):
		// the rounds-bearing variant is the more specific cue,
		// plain "for time" is the rest
		if match := reRoundsForTime.FindStringSubmatch(up); match != nil {
			return Classification{
				Format:     FormatRFT,
				TimeDomain: roundsTimeDomain(match[1]),
			}
		}
		return Classification{
			Format:     FormatForTime,
			TimeDomain: TimeDomainMedium,
		}
	case reEMOM.MatchString(up), reEveryMin.MatchString(up):
		return Classification{
			Format:     FormatEMOM,
			TimeDomain: emomTimeDomain(up),
		}
	case strings.Contains(up, "DEATH BY"):
		return Classification{
			Format:     FormatDeathBy,
			TimeDomain: TimeDomainMedium,
		}
	case strings.Contains(up, "TABATA"):
		return Classification{
			Format:     FormatTabata,
			TimeDomain: TimeDomainMedium,
		}
	case strings.Contains(up, "BUY-IN"), strings.Contains(up, "BUY IN"),
		strings.Contains(up, "CASH-OUT"), strings.Contains(up, "CASH OUT"):
		return Classification{
			Format:     FormatBuyIn,
			TimeDomain: TimeDomainMedium,
		}
	case reRepScheme.MatchString(up), rePercentLoad.MatchString(up):
		return Classification{
			Format:     FormatStrength,
			TimeDomain: TimeDomainNone,
		}
	default:
		return Classification{
			Format:     FormatOther,
			TimeDomain: TimeDomainMedium,
		}
	}
}

// StructureFor buckets a workout by its count of distinct movements.
// Strength work is always "other" regardless of movement count.
func StructureFor(format Format, distinctMovements int) Structure {
	if format == FormatStrength {
		return StructureOther
	}
	switch {
	case distinctMovements == 2:
		return StructureCouplet
	case distinctMovements == 3:
		return StructureTriplet
	case distinctMovements >= 4:
		return StructureChipper
	default:
		return StructureOther
	}
}

func amrapTimeDomain(up string) TimeDomain {
	minutes := defaultAMRAPMinutes
	if match := reAMRAPMinutes.FindStringSubmatch(up); match != nil {
		minutes = atoiOr(match[1], defaultAMRAPMinutes)
	} else if match := reMinutes.FindStringSubmatch(up); match != nil {
		minutes = atoiOr(match[1], defaultAMRAPMinutes)
	}
	switch {
	case minutes <= 9:
		return TimeDomainShort
	case minutes <= 20:
		return TimeDomainMedium
	default:
		return TimeDomainLong
	}
}

func roundsTimeDomain(roundsStr string) TimeDomain {
	rounds := atoiOr(roundsStr, defaultRounds)
	switch {
	case rounds <= 3:
		return TimeDomainShort
	case rounds <= 5:
		return TimeDomainMedium
	default:
		return TimeDomainLong
	}
}

func emomTimeDomain(up string) TimeDomain {
	minutes := defaultEMOMMinutes
	if match := reEMOMMinutes.FindStringSubmatch(up); match != nil {
		minutes = atoiOr(match[1], defaultEMOMMinutes)
	} else if match := reMinutes.FindStringSubmatch(up); match != nil {
		minutes = atoiOr(match[1], defaultEMOMMinutes)
	}
	switch {
	case minutes <= 10:
		return TimeDomainShort
	case minutes <= 15:
		return TimeDomainMedium
	default:
		return TimeDomainLong
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
