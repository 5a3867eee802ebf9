package skills

import "sort"

const maxLevelNumeric = 3

// Priority is one ranked entry of the skill practice priority list.
// The ordering of the list is the contract the schedule builder relies on.
type Priority struct {
	SkillKey    string `json:"skillKey"`
	DisplayName string `json:"displayName"`
	Level       Level  `json:"level"`
	Score       int    `json:"score"`
	MaxPerWeek  int    `json:"maxPerWeek"`
}

// Ranker scores and orders skills by how much work they need, how often
// their movements show up in competition, and how addressable they are.
type Ranker struct {
	skills map[string]Skill
}

func NewRanker(skills []Skill) *Ranker {
	byKey := make(map[string]Skill, len(skills))
	for _, skill := range skills {
		byKey[skill.Key] = skill
	}
	return &Ranker{skills: byKey}
}

// Rank converts the athlete's level map and the movement competition
// counts into a sorted priority list. Advanced skills are maintenance
// work and drop out; a skill with unmet prerequisites drops out too and
// redirects its weight onto the blocking prerequisites instead, pulling
// them into the list even when the athlete never reported them.
func (ranker *Ranker) Rank(skillLevels map[string]Level, competitionCounts map[string]int) []Priority {
	levelOf := func(key string) Level {
		if level, ok := skillLevels[key]; ok {
			return level
		}
		return LevelNone
	}

	queue := make([]string, 0, len(skillLevels))
	for key := range skillLevels {
		if _, ok := ranker.skills[key]; ok {
			queue = append(queue, key)
		}
	}
	sort.Strings(queue)

	queued := make(map[string]bool, len(queue))
	for _, key := range queue {
		queued[key] = true
	}

	boosts := make(map[string]int)
	var candidates []string

	// the prerequisite graph is a small fixed DAG, so the worklist is finite
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]

		skill := ranker.skills[key]
		need := maxLevelNumeric - levelOf(key).Numeric()
		if need <= 0 {
			continue
		}
		tier := ranker.competitionTier(skill, competitionCounts)

		var unmet []string
		for _, prereq := range skill.Prerequisites {
			if levelOf(prereq.SkillKey).Numeric() < prereq.MinLevel.Numeric() {
				unmet = append(unmet, prereq.SkillKey)
			}
		}

		if len(unmet) > 0 {
			for _, prereqKey := range unmet {
				boosts[prereqKey] += need * (tier + 1)
				if !queued[prereqKey] {
					queued[prereqKey] = true
					queue = append(queue, prereqKey)
				}
			}
			continue
		}

		candidates = append(candidates, key)
	}

	priorities := make([]Priority, 0, len(candidates))
	for _, key := range candidates {
		skill := ranker.skills[key]
		need := maxLevelNumeric - levelOf(key).Numeric()
		tier := ranker.competitionTier(skill, competitionCounts)
		priorities = append(priorities, Priority{
			SkillKey:    key,
			DisplayName: skill.DisplayName,
			Level:       levelOf(key),
			Score:       need*(tier+1)*skill.Trainability + boosts[key],
			MaxPerWeek:  1,
		})
	}

	sort.Slice(priorities, func(i, j int) bool {
		a, b := priorities[i], priorities[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aCount := ranker.maxCompetitionCount(ranker.skills[a.SkillKey], competitionCounts)
		bCount := ranker.maxCompetitionCount(ranker.skills[b.SkillKey], competitionCounts)
		if aCount != bCount {
			return aCount > bCount
		}
		return a.SkillKey < b.SkillKey
	})

	// the two most pressing skills earn a second weekly session
	for i := range priorities {
		if i < 2 {
			priorities[i].MaxPerWeek = 2
		}
	}

	return priorities
}

// competitionTier buckets the skill's best-represented movement:
// seen in 15+ competitions is tier 3, 8+ tier 2, at least once tier 1.
func (ranker *Ranker) competitionTier(skill Skill, competitionCounts map[string]int) int {
	count := ranker.maxCompetitionCount(skill, competitionCounts)
	switch {
	case count >= 15:
		return 3
	case count >= 8:
		return 2
	case count >= 1:
		return 1
	default:
		return 0
	}
}

func (ranker *Ranker) maxCompetitionCount(skill Skill, competitionCounts map[string]int) int {
	max := 0
	for _, movement := range skill.Movements {
		if count := competitionCounts[movement]; count > max {
			max = count
		}
	}
	return max
}
