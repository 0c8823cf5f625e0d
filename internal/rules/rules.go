// Package rules loads, edits, and persists the plain-text pattern rules file.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/prompter/internal/types"
	"github.com/temirov/prompter/internal/utils"
)

// Section names one of the pattern lists consulted by the classifier.
type Section string

const (
	// SectionIgnore lists patterns removed from the summary.
	SectionIgnore Section = "IGNORE"
	// SectionFull lists patterns shown with their content.
	SectionFull Section = "FULL"
	// SectionTreeOnly lists patterns shown as names only.
	SectionTreeOnly Section = "TREE-ONLY"

	invalidSectionFormat     = "unknown section %q (expected IGNORE, FULL, or TREE-ONLY)"
	patternExistsFormat      = "pattern %q already present in [%s]: %w"
	indexOutOfRangeFormat    = "index %d outside [%s] with %d patterns: %w"
	emptyPatternFormat       = "empty pattern for [%s]: %w"
	sectionPatternListFormat = "[%s]"
)

var (
	// ErrPatternExists reports an attempt to add a duplicate pattern to a section.
	ErrPatternExists = errors.New("pattern exists")
	// ErrIndexOutOfRange reports an edit or delete outside the section bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptyPattern reports a blank pattern.
	ErrEmptyPattern = errors.New("empty pattern")
)

// Sections lists the known sections in file order.
var Sections = []Section{SectionIgnore, SectionFull, SectionTreeOnly}

// ParseSection converts a section name, ignoring case and surrounding brackets.
func ParseSection(input string) (Section, error) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.TrimSuffix(strings.TrimPrefix(normalized, "["), "]")
	for _, section := range Sections {
		if string(section) == normalized {
			return section, nil
		}
	}
	return "", fmt.Errorf(invalidSectionFormat, input)
}

// Header returns the bracketed header line of the section.
func (section Section) Header() string {
	return fmt.Sprintf(sectionPatternListFormat, section)
}

// Patterns returns the patterns stored for a section.
func Patterns(configuration types.PatternConfiguration, section Section) []string {
	switch section {
	case SectionIgnore:
		return configuration.IgnorePatterns
	case SectionFull:
		return configuration.FullPatterns
	case SectionTreeOnly:
		return configuration.TreePatterns
	default:
		return nil
	}
}

func withPatterns(configuration types.PatternConfiguration, section Section, patterns []string) types.PatternConfiguration {
	switch section {
	case SectionIgnore:
		configuration.IgnorePatterns = patterns
	case SectionFull:
		configuration.FullPatterns = patterns
	case SectionTreeOnly:
		configuration.TreePatterns = patterns
	}
	return configuration
}

// AddPattern returns a copy of the configuration with pattern appended to the section.
func AddPattern(configuration types.PatternConfiguration, section Section, pattern string) (types.PatternConfiguration, error) {
	trimmedPattern := strings.TrimSpace(pattern)
	if trimmedPattern == "" {
		return configuration, fmt.Errorf(emptyPatternFormat, section, ErrEmptyPattern)
	}
	updated := configuration.Clone()
	existing := Patterns(updated, section)
	if utils.ContainsString(existing, trimmedPattern) {
		return configuration, fmt.Errorf(patternExistsFormat, trimmedPattern, section, ErrPatternExists)
	}
	return withPatterns(updated, section, append(existing, trimmedPattern)), nil
}

// ReplacePattern returns a copy of the configuration with the pattern at index replaced.
func ReplacePattern(configuration types.PatternConfiguration, section Section, index int, pattern string) (types.PatternConfiguration, error) {
	trimmedPattern := strings.TrimSpace(pattern)
	if trimmedPattern == "" {
		return configuration, fmt.Errorf(emptyPatternFormat, section, ErrEmptyPattern)
	}
	updated := configuration.Clone()
	existing := Patterns(updated, section)
	if index < 0 || index >= len(existing) {
		return configuration, fmt.Errorf(indexOutOfRangeFormat, index, section, len(existing), ErrIndexOutOfRange)
	}
	for existingIndex, existingPattern := range existing {
		if existingIndex != index && existingPattern == trimmedPattern {
			return configuration, fmt.Errorf(patternExistsFormat, trimmedPattern, section, ErrPatternExists)
		}
	}
	existing[index] = trimmedPattern
	return withPatterns(updated, section, existing), nil
}

// RemovePattern returns a copy of the configuration without the pattern at index.
func RemovePattern(configuration types.PatternConfiguration, section Section, index int) (types.PatternConfiguration, error) {
	updated := configuration.Clone()
	existing := Patterns(updated, section)
	if index < 0 || index >= len(existing) {
		return configuration, fmt.Errorf(indexOutOfRangeFormat, index, section, len(existing), ErrIndexOutOfRange)
	}
	remaining := append(existing[:index:index], existing[index+1:]...)
	return withPatterns(updated, section, remaining), nil
}

// SetDefaultLevel returns a copy of the configuration with a new default level.
func SetDefaultLevel(configuration types.PatternConfiguration, level types.InclusionLevel) types.PatternConfiguration {
	updated := configuration.Clone()
	updated.DefaultLevel = level
	return updated
}
