package analysis

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/wodwise/wodwise/internal/vocabulary"
)

// Matcher is the deterministic movement canonicalizer: whole-word,
// case-insensitive matching of canonical keys and alias phrases against
// free workout text. Patterns are compiled once per catalog; the matcher
// is immutable and safe for concurrent use.
type Matcher struct {
	catalog       *vocabulary.Catalog
	keyPatterns   []keyPattern
	aliasPatterns []aliasPattern
}

type keyPattern struct {
	key string
	re  *regexp.Regexp
}

type aliasPattern struct {
	key string
	re  *regexp.Regexp
}

func NewMatcher(catalog *vocabulary.Catalog) *Matcher {
	m := &Matcher{
		catalog: catalog,
	}

	// keys match both the underscore form and the spaced form,
	// with an optional plural "s"
	for _, key := range catalog.Keys() {
		spaced := strings.ReplaceAll(key, "_", " ")
		m.keyPatterns = append(m.keyPatterns, keyPattern{
			key: key,
			re:  wholeWordPattern(spaced, key),
		})
	}

	for _, phrase := range catalog.AliasPhrases() {
		key, ok := catalog.Resolve(phrase)
		if !ok {
			continue
		}
		spaced := strings.ReplaceAll(phrase, "_", " ")
		m.aliasPatterns = append(m.aliasPatterns, aliasPattern{
			key: key,
			re:  wholeWordPattern(spaced),
		})
	}

	return m
}

func wholeWordPattern(variants ...string) *regexp.Regexp {
	quoted := make([]string, 0, len(variants))
	for _, v := range variants {
		quoted = append(quoted, regexp.QuoteMeta(v))
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)s?\b`)
}

// Extract returns the distinct canonical movements mentioned in the text,
// each at most once no matter how often or under how many aliases it
// appears. The result is ordered by key. Load stays empty on this path.
func (m *Matcher) Extract(text string) []ExtractedMovement {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	found := make(map[string]bool)
	for _, kp := range m.keyPatterns {
		if kp.re.MatchString(text) {
			found[kp.key] = true
		}
	}
	for _, ap := range m.aliasPatterns {
		if found[ap.key] {
			// first match wins, key already present
			continue
		}
		// aliases resolving to a key missing from the vocabulary
		// were already dropped at catalog construction
		if ap.re.MatchString(text) {
			found[ap.key] = true
		}
	}

	keys := make([]string, 0, len(found))
	for key := range found {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	movements := make([]ExtractedMovement, 0, len(keys))
	for _, key := range keys {
		movement, _ := m.catalog.Movement(key)
		movements = append(movements, ExtractedMovement{
			Key:      key,
			Modality: movement.Modality,
		})
	}
	return movements
}

// ExtractBatch implements the MovementExtractor strategy with the
// deterministic matcher; it cannot fail.
func (m *Matcher) ExtractBatch(_ context.Context, workouts []WorkoutRecord) (map[int][]ExtractedMovement, error) {
	extracted := make(map[int][]ExtractedMovement, len(workouts))
	for i, workout := range workouts {
		extracted[i] = m.Extract(workout.Text)
	}
	return extracted, nil
}
