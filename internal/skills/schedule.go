package skills

const (
	DefaultTotalWeeks  = 12
	DefaultDaysPerWeek = 5

	// every fourth week drops the volume
	deloadEvery = 4

	// a skill normally appears at most twice a week; the gap-filling
	// last resort may stretch that to three
	regularWeeklyCeiling    = 2
	lastResortWeeklyCeiling = 3
)

// Slot is one scheduled skill practice session. Days without a slot
// carry no skill work.
type Slot struct {
	Week        int    `json:"week"`
	Day         int    `json:"day"`
	SkillKey    string `json:"skillKey"`
	DisplayName string `json:"displayName"`
	Level       Level  `json:"level"`
}

// BuildSchedule greedily assigns the ranked skills to a week-by-day
// grid. Per week it first gives each skill its quota (halved on deload
// weeks), then fills leftover days from a rotating offset so that
// lower-ranked skills are not permanently starved. A skill never lands
// on two adjacent days of the same week; once placed, a slot is never
// revisited. Deload weeks only carry the top-ranked skills and may stay
// under-filled.
func BuildSchedule(priorities []Priority, totalWeeks, daysPerWeek int) []Slot {
	if len(priorities) == 0 || totalWeeks < 1 || daysPerWeek < 1 {
		return []Slot{}
	}

	byKey := make(map[string]Priority, len(priorities))
	for _, p := range priorities {
		byKey[p.SkillKey] = p
	}

	slots := []Slot{}
	for week := 1; week <= totalWeeks; week++ {
		deload := week%deloadEvery == 0

		// 1-based day grid, empty string means open
		grid := make([]string, daysPerWeek+1)
		weekCounts := make(map[string]int)

		place := func(day int, p Priority) {
			grid[day] = p.SkillKey
			weekCounts[p.SkillKey]++
		}
		adjacentToSame := func(day int, skillKey string) bool {
			if day > 1 && grid[day-1] == skillKey {
				return true
			}
			if day < daysPerWeek && grid[day+1] == skillKey {
				return true
			}
			return false
		}

		// phase 1: quota placement in ranked order
		for _, p := range priorities {
			quota := p.MaxPerWeek
			if deload {
				if p.MaxPerWeek >= regularWeeklyCeiling {
					quota = 1
				} else {
					quota = 0
				}
			}
			for day := 1; day <= daysPerWeek && weekCounts[p.SkillKey] < quota; day++ {
				if grid[day] == "" && !adjacentToSame(day, p.SkillKey) {
					place(day, p)
				}
			}
		}

		// phase 2: gap filling
		for day := 1; day <= daysPerWeek; day++ {
			if grid[day] != "" {
				continue
			}

			if deload {
				// only the top skill, and only if the week still misses it
				top := priorities[0]
				if weekCounts[top.SkillKey] == 0 && !adjacentToSame(day, top.SkillKey) {
					place(day, top)
				}
				continue
			}

			offset := (week - 1) % len(priorities)
			filled := false
			for i := 0; i < len(priorities) && !filled; i++ {
				p := priorities[(offset+i)%len(priorities)]
				if weekCounts[p.SkillKey] < regularWeeklyCeiling && !adjacentToSame(day, p.SkillKey) {
					place(day, p)
					filled = true
				}
			}
			if filled {
				continue
			}
			// last resort: allow a third weekly occurrence rather than
			// leaving the day empty, adjacency still holds
			for i := 0; i < len(priorities) && !filled; i++ {
				p := priorities[(offset+i)%len(priorities)]
				if weekCounts[p.SkillKey] < lastResortWeeklyCeiling && !adjacentToSame(day, p.SkillKey) {
					place(day, p)
					filled = true
				}
			}
		}

		for day := 1; day <= daysPerWeek; day++ {
			if grid[day] == "" {
				continue
			}
			p := byKey[grid[day]]
			slots = append(slots, Slot{
				Week:        week,
				Day:         day,
				SkillKey:    p.SkillKey,
				DisplayName: p.DisplayName,
				Level:       p.Level,
			})
		}
	}

	return slots
}
