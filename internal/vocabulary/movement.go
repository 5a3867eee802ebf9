package vocabulary

import (
	"sort"
	"strings"
)

// Modality classifies a movement the way competitive programming does:
// weightlifting (W), gymnastics (G) or monostructural cardio (M).
type Modality string

const (
	ModalityWeightlifting  Modality = "weightlifting"
	ModalityGymnastics     Modality = "gymnastics"
	ModalityMonostructural Modality = "monostructural"
	ModalityUnknown        Modality = "unknown"
)

// ParseModality accepts both the single-letter codes used in catalog rows
// and the full names. Anything unrecognized maps to ModalityUnknown.
func ParseModality(code string) Modality {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "W", "WEIGHTLIFTING":
		return ModalityWeightlifting
	case "G", "GYMNASTICS":
		return ModalityGymnastics
	case "M", "MONOSTRUCTURAL", "CARDIO":
		return ModalityMonostructural
	default:
		return ModalityUnknown
	}
}

type Movement struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Modality    Modality `json:"modality"`
	Category    string   `json:"category"`
}

// Entry is one catalog row, the shape both the built-in defaults and the
// database rows share.
type Entry struct {
	Key              string   `json:"key"`
	DisplayName      string   `json:"displayName"`
	Modality         Modality `json:"modality"`
	Category         string   `json:"category"`
	Aliases          []string `json:"aliases,omitempty"`
	CompetitionCount int      `json:"competitionCount"`
}

// Catalog is the immutable movement vocabulary: canonical movements, the
// alias phrases resolving to them, and per-movement competition counts.
// It is constructed once and safe for concurrent use.
type Catalog struct {
	movements         map[string]Movement
	aliases           map[string]string
	competitionCounts map[string]int
}

func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{
		movements:         make(map[string]Movement),
		aliases:           make(map[string]string),
		competitionCounts: make(map[string]int),
	}
	for _, e := range entries {
		key := NormalizePhrase(e.Key)
		if key == "" {
			continue
		}
		c.movements[key] = Movement{
			Key:         key,
			DisplayName: e.DisplayName,
			Modality:    e.Modality,
			Category:    e.Category,
		}
		if e.CompetitionCount > 0 {
			c.competitionCounts[key] = e.CompetitionCount
		}
		for _, alias := range e.Aliases {
			alias = NormalizePhrase(alias)
			if alias == "" {
				continue
			}
			c.aliases[alias] = key
		}
	}
	return c
}

// NormalizePhrase lower-cases and trims a free-text phrase, the form
// alias lookups are keyed by.
func NormalizePhrase(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

func (c *Catalog) Movement(key string) (Movement, bool) {
	m, ok := c.movements[key]
	return m, ok
}

func (c *Catalog) Contains(key string) bool {
	_, ok := c.movements[key]
	return ok
}

// Keys returns all canonical movement keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.movements))
	for key := range c.movements {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Movements returns all catalog movements ordered by key.
func (c *Catalog) Movements() []Movement {
	movements := make([]Movement, 0, len(c.movements))
	for _, key := range c.Keys() {
		movements = append(movements, c.movements[key])
	}
	return movements
}

// AliasPhrases returns all alias phrases, sorted.
func (c *Catalog) AliasPhrases() []string {
	phrases := make([]string, 0, len(c.aliases))
	for phrase := range c.aliases {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)
	return phrases
}

func (c *Catalog) Resolve(aliasPhrase string) (string, bool) {
	key, ok := c.aliases[NormalizePhrase(aliasPhrase)]
	return key, ok
}

func (c *Catalog) CompetitionCount(key string) int {
	return c.competitionCounts[key]
}

// CompetitionCounts returns a copy of the per-movement competition counts.
func (c *Catalog) CompetitionCounts() map[string]int {
	counts := make(map[string]int, len(c.competitionCounts))
	for key, count := range c.competitionCounts {
		counts[key] = count
	}
	return counts
}

// Entries renders the catalog back into rows, ordered by key,
// with each movement's aliases sorted.
func (c *Catalog) Entries() []Entry {
	key2aliases := make(map[string][]string)
	for alias, key := range c.aliases {
		key2aliases[key] = append(key2aliases[key], alias)
	}
	entries := make([]Entry, 0, len(c.movements))
	for _, key := range c.Keys() {
		m := c.movements[key]
		aliases := key2aliases[key]
		sort.Strings(aliases)
		entries = append(entries, Entry{
			Key:              key,
			DisplayName:      m.DisplayName,
			Modality:         m.Modality,
			Category:         m.Category,
			Aliases:          aliases,
			CompetitionCount: c.competitionCounts[key],
		})
	}
	return entries
}

// MergedWith returns a new catalog with the other catalog's rows layered
// over this one: a shared key is replaced by the other's row, new keys
// extend the catalog. Neither input is mutated.
func (c *Catalog) MergedWith(other *Catalog) *Catalog {
	if other == nil {
		return NewCatalog(c.Entries())
	}

	merged := append(c.Entries(), other.Entries()...)
	return NewCatalog(merged)
}
