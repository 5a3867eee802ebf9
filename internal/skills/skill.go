package skills

import "strings"

// Level is an athlete's self-reported proficiency at a skill.
type Level string

const (
	LevelNone         Level = "none"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel maps a free-form level string to a Level. Anything
// unrecognized is treated as no proficiency at all.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return LevelBeginner
	case "intermediate":
		return LevelIntermediate
	case "advanced":
		return LevelAdvanced
	default:
		return LevelNone
	}
}

func (l Level) Numeric() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	default:
		return 0
	}
}

// Prerequisite says a skill requires another skill at a minimum level
// before practicing it makes sense.
type Prerequisite struct {
	SkillKey string
	MinLevel Level
}

// Skill is one trainable skill: the canonical movements it builds on
// (their competition frequency sets its tier), a hand-authored
// trainability weight (1 hardest to move, 3 most addressable), and the
// prerequisite gates.
type Skill struct {
	Key           string
	DisplayName   string
	Movements     []string
	Trainability  int
	Prerequisites []Prerequisite
}

// DefaultSkills returns the built-in skill table. A fresh slice is
// built on every call so callers can never poison the defaults.
func DefaultSkills() []Skill {
	return []Skill{
		{
			Key:          "double_under",
			DisplayName:  "Double-Unders",
			Movements:    []string{"double_under"},
			Trainability: 3,
		},
		{
			Key:          "pull_up",
			DisplayName:  "Pull-Ups",
			Movements:    []string{"pull_up"},
			Trainability: 3,
		},
		{
			Key:          "chest_to_bar",
			DisplayName:  "Chest-to-Bar Pull-Ups",
			Movements:    []string{"chest_to_bar"},
			Trainability: 2,
			Prerequisites: []Prerequisite{
				{SkillKey: "pull_up", MinLevel: LevelIntermediate},
			},
		},
		{
			Key:          "toes_to_bar",
			DisplayName:  "Toes-to-Bar",
			Movements:    []string{"toes_to_bar"},
			Trainability: 2,
		},
		{
			Key:          "handstand_push_up",
			DisplayName:  "Handstand Push-Ups",
			Movements:    []string{"handstand_push_up"},
			Trainability: 2,
		},
		{
			Key:          "handstand_walk",
			DisplayName:  "Handstand Walk",
			Movements:    []string{"handstand_walk"},
			Trainability: 1,
			Prerequisites: []Prerequisite{
				{SkillKey: "handstand_push_up", MinLevel: LevelIntermediate},
			},
		},
		{
			Key:          "ring_dip",
			DisplayName:  "Ring Dips",
			Movements:    []string{"ring_dip"},
			Trainability: 2,
		},
		{
			Key:          "muscle_up",
			DisplayName:  "Ring Muscle-Ups",
			Movements:    []string{"muscle_up"},
			Trainability: 1,
			Prerequisites: []Prerequisite{
				{SkillKey: "pull_up", MinLevel: LevelIntermediate},
				{SkillKey: "ring_dip", MinLevel: LevelIntermediate},
			},
		},
		{
			Key:          "bar_muscle_up",
			DisplayName:  "Bar Muscle-Ups",
			Movements:    []string{"bar_muscle_up"},
			Trainability: 1,
			Prerequisites: []Prerequisite{
				{SkillKey: "chest_to_bar", MinLevel: LevelIntermediate},
			},
		},
		{
			Key:          "pistol",
			DisplayName:  "Pistols",
			Movements:    []string{"pistol"},
			Trainability: 2,
		},
		{
			Key:          "rope_climb",
			DisplayName:  "Rope Climbs",
			Movements:    []string{"rope_climb"},
			Trainability: 2,
		},
		{
			Key:          "snatch",
			DisplayName:  "Snatch",
			Movements:    []string{"snatch", "power_snatch"},
			Trainability: 1,
		},
		{
			Key:          "overhead_squat",
			DisplayName:  "Overhead Squat",
			Movements:    []string{"overhead_squat"},
			Trainability: 2,
		},
	}
}
