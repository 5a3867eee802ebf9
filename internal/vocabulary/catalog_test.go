package vocabulary_test

import (
	"testing"

	"github.com/wodwise/wodwise/internal/vocabulary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_AliasesResolveToKnownKeys(t *testing.T) {
	catalog := vocabulary.Default()
	require.NotEmpty(t, catalog.Keys())

	for _, phrase := range catalog.AliasPhrases() {
		key, ok := catalog.Resolve(phrase)
		require.True(t, ok)
		assert.True(t, catalog.Contains(key), "alias [%s] points to unknown key [%s]", phrase, key)
	}
}

func TestDefaultCatalog_KnownAliases(t *testing.T) {
	catalog := vocabulary.Default()

	key, ok := catalog.Resolve("t2b")
	require.True(t, ok)
	assert.Equal(t, "toes_to_bar", key)

	key, ok = catalog.Resolve("  Toes-To-Bar ")
	require.True(t, ok)
	assert.Equal(t, "toes_to_bar", key)

	_, ok = catalog.Resolve("quidditch")
	assert.False(t, ok)
}

func TestParseModality(t *testing.T) {
	assert.Equal(t, vocabulary.ModalityWeightlifting, vocabulary.ParseModality("W"))
	assert.Equal(t, vocabulary.ModalityGymnastics, vocabulary.ParseModality("gymnastics"))
	assert.Equal(t, vocabulary.ModalityMonostructural, vocabulary.ParseModality("m"))
	assert.Equal(t, vocabulary.ModalityUnknown, vocabulary.ParseModality("x"))
	assert.Equal(t, vocabulary.ModalityUnknown, vocabulary.ParseModality(""))
}

func TestCatalog_MergedWith(t *testing.T) {
	base := vocabulary.Default()
	custom := vocabulary.NewCatalog([]vocabulary.Entry{
		{
			// override: different modality + extra alias
			Key:         "thruster",
			DisplayName: "Thruster (Custom)",
			Modality:    vocabulary.ModalityGymnastics,
			Category:    "squat",
			Aliases:     []string{"front squat to press"},
		},
		{
			// new movement
			Key:              "sled_push",
			DisplayName:      "Sled Push",
			Modality:         vocabulary.ModalityMonostructural,
			Category:         "carry",
			CompetitionCount: 2,
		},
	})

	merged := base.MergedWith(custom)

	m, ok := merged.Movement("thruster")
	require.True(t, ok)
	assert.Equal(t, "Thruster (Custom)", m.DisplayName)
	assert.Equal(t, vocabulary.ModalityGymnastics, m.Modality)
	key, ok := merged.Resolve("front squat to press")
	require.True(t, ok)
	assert.Equal(t, "thruster", key)

	assert.True(t, merged.Contains("sled_push"))
	assert.Equal(t, 2, merged.CompetitionCount("sled_push"))

	// inputs untouched
	m, ok = base.Movement("thruster")
	require.True(t, ok)
	assert.Equal(t, "Thruster", m.DisplayName)
	assert.False(t, base.Contains("sled_push"))
	assert.False(t, custom.Contains("deadlift"))

	// base entries survive the merge
	assert.True(t, merged.Contains("deadlift"))
}
