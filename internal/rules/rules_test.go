package rules_test

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/prompter/internal/rules"
	"github.com/temirov/prompter/internal/types"
)

const sampleRules = `; comment
# another comment

default_level = FULL
[IGNORE]
*.log
build/

[FULL]
src/*.go

[TREE-ONLY]
docs/*
`

func TestParseReadsSections(t *testing.T) {
	configuration, parseError := rules.Parse(strings.NewReader(sampleRules), zap.NewNop())
	require.NoError(t, parseError)

	assert.Equal(t, types.InclusionLevelFull, configuration.DefaultLevel)
	assert.Equal(t, []string{"*.log", "build/"}, configuration.IgnorePatterns)
	assert.Equal(t, []string{"src/*.go"}, configuration.FullPatterns)
	assert.Equal(t, []string{"docs/*"}, configuration.TreePatterns)
	assert.Empty(t, configuration.UnknownSections)
}

func TestParseToleratesMalformedInput(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	input := "stray.txt\ndefault_level = SOMETIMES\n[EXTRA]\nkept.txt\n[ignore]\n*.tmp\n"

	configuration, parseError := rules.Parse(strings.NewReader(input), logger)
	require.NoError(t, parseError)

	assert.Equal(t, types.InclusionLevelTreeOnly, configuration.DefaultLevel)
	assert.Equal(t, []string{"*.tmp"}, configuration.IgnorePatterns)
	require.Len(t, configuration.UnknownSections, 1)
	assert.Equal(t, "EXTRA", configuration.UnknownSections[0].Name)
	assert.Equal(t, []string{"kept.txt"}, configuration.UnknownSections[0].Patterns)
	assert.Equal(t, 3, recorded.Len())
}

func TestFormatRoundTrip(t *testing.T) {
	original := types.PatternConfiguration{
		DefaultLevel:   types.InclusionLevelFull,
		IgnorePatterns: []string{".git/", "*.log"},
		FullPatterns:   []string{"**/*.go"},
		TreePatterns:   []string{"vendor/"},
		UnknownSections: []types.PatternSection{
			{Name: "NOTES", Patterns: []string{"todo.txt"}},
		},
	}

	parsed, parseError := rules.Parse(strings.NewReader(rules.Format(original)), zap.NewNop())
	require.NoError(t, parseError)
	assert.Equal(t, original, parsed)
}

func TestEditsReturnCopies(t *testing.T) {
	original := types.PatternConfiguration{
		DefaultLevel:   types.InclusionLevelTreeOnly,
		IgnorePatterns: []string{"a", "b", "c"},
	}

	added, addError := rules.AddPattern(original, rules.SectionFull, " *.md ")
	require.NoError(t, addError)
	assert.Equal(t, []string{"*.md"}, added.FullPatterns)
	assert.Nil(t, original.FullPatterns)

	replaced, replaceError := rules.ReplacePattern(original, rules.SectionIgnore, 1, "z")
	require.NoError(t, replaceError)
	assert.Equal(t, []string{"a", "z", "c"}, replaced.IgnorePatterns)

	removed, removeError := rules.RemovePattern(original, rules.SectionIgnore, 0)
	require.NoError(t, removeError)
	assert.Equal(t, []string{"b", "c"}, removed.IgnorePatterns)

	leveled := rules.SetDefaultLevel(original, types.InclusionLevelFull)
	assert.Equal(t, types.InclusionLevelFull, leveled.DefaultLevel)

	assert.Equal(t, []string{"a", "b", "c"}, original.IgnorePatterns)
	assert.Equal(t, types.InclusionLevelTreeOnly, original.DefaultLevel)
}

func TestEditErrors(t *testing.T) {
	configuration := types.PatternConfiguration{IgnorePatterns: []string{"a", "b"}}

	_, addError := rules.AddPattern(configuration, rules.SectionIgnore, "a")
	assert.ErrorIs(t, addError, rules.ErrPatternExists)

	_, emptyError := rules.AddPattern(configuration, rules.SectionIgnore, "   ")
	assert.ErrorIs(t, emptyError, rules.ErrEmptyPattern)

	_, replaceError := rules.ReplacePattern(configuration, rules.SectionIgnore, 0, "b")
	assert.ErrorIs(t, replaceError, rules.ErrPatternExists)

	_, rangeError := rules.RemovePattern(configuration, rules.SectionFull, 0)
	assert.ErrorIs(t, rangeError, rules.ErrIndexOutOfRange)

	_, negativeError := rules.ReplacePattern(configuration, rules.SectionIgnore, -1, "x")
	assert.ErrorIs(t, negativeError, rules.ErrIndexOutOfRange)
}

func TestParseSection(t *testing.T) {
	section, sectionError := rules.ParseSection("[tree-only]")
	require.NoError(t, sectionError)
	assert.Equal(t, rules.SectionTreeOnly, section)

	_, unknownError := rules.ParseSection("binary")
	assert.Error(t, unknownError)
}

func TestLoadOrCreateWritesTemplate(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), rules.FileName)

	configuration, created, loadError := rules.LoadOrCreate(rulesPath, types.InclusionLevelFull, zap.NewNop())
	require.NoError(t, loadError)
	assert.True(t, created)
	assert.Equal(t, types.InclusionLevelFull, configuration.DefaultLevel)
	assert.Contains(t, configuration.IgnorePatterns, ".git/")

	_, createdAgain, reloadError := rules.LoadOrCreate(rulesPath, types.InclusionLevelTreeOnly, zap.NewNop())
	require.NoError(t, reloadError)
	assert.False(t, createdAgain)
}

func TestSaveThenLoad(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), rules.FileName)
	configuration := types.PatternConfiguration{
		DefaultLevel: types.InclusionLevelTreeOnly,
		FullPatterns: []string{"main.go"},
	}
	require.NoError(t, rules.Save(rulesPath, configuration))

	loaded, loadError := rules.Load(rulesPath, zap.NewNop())
	require.NoError(t, loadError)
	assert.Equal(t, configuration, loaded)

	_, missingError := rules.Load(filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	assert.ErrorIs(t, missingError, fs.ErrNotExist)
}
