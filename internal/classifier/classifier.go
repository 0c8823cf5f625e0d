// Package classifier decides whether a path is ignored, shown in full, or shown as a name only.
package classifier

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/prompter/internal/types"
)

const (
	pathSegmentSeparator = "/"
	currentDirectoryPath = "./"
)

// Decision is the outcome of classifying a single path.
type Decision int

const (
	// DecisionIgnored removes the entry and everything below it.
	DecisionIgnored Decision = iota
	// DecisionFull shows the entry and its content.
	DecisionFull
	// DecisionTreeOnly shows the entry name only.
	DecisionTreeOnly
)

// String returns the rules-file label of the decision.
func (decision Decision) String() string {
	switch decision {
	case DecisionIgnored:
		return "IGNORE"
	case DecisionFull:
		return string(types.InclusionLevelFull)
	case DecisionTreeOnly:
		return string(types.InclusionLevelTreeOnly)
	default:
		return "UNKNOWN"
	}
}

// InclusionLevel maps a non-ignored decision onto its inclusion level.
func (decision Decision) InclusionLevel() (types.InclusionLevel, bool) {
	switch decision {
	case DecisionFull:
		return types.InclusionLevelFull, true
	case DecisionTreeOnly:
		return types.InclusionLevelTreeOnly, true
	default:
		return "", false
	}
}

// Classify applies ignore patterns first, then FULL patterns, then TREE-ONLY patterns,
// falling back to the configured default level. The first matching pattern of a list wins.
func Classify(relativePath string, isDirectory bool, configuration types.PatternConfiguration) Decision {
	normalizedPath := NormalizePath(relativePath)
	if matchesAny(normalizedPath, isDirectory, configuration.IgnorePatterns) {
		return DecisionIgnored
	}
	if matchesAny(normalizedPath, isDirectory, configuration.FullPatterns) {
		return DecisionFull
	}
	if matchesAny(normalizedPath, isDirectory, configuration.TreePatterns) {
		return DecisionTreeOnly
	}
	if configuration.DefaultLevel == types.InclusionLevelFull {
		return DecisionFull
	}
	return DecisionTreeOnly
}

// NormalizePath converts separators to forward slashes and strips a leading "./".
func NormalizePath(relativePath string) string {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	return strings.TrimPrefix(normalizedPath, currentDirectoryPath)
}

// Matches reports whether a single pattern selects the path. A pattern ending with a slash
// selects directories only and is tested against the path with a trailing slash appended.
// Wildcards follow shell glob rules: "*" and "?" stay within one path segment.
// Two extensions apply: "**" spans any number of directories and "{a,b}" matches either alternative.
// A malformed pattern never matches.
func Matches(relativePath string, isDirectory bool, pattern string) bool {
	normalizedPath := NormalizePath(relativePath)
	if strings.HasSuffix(pattern, pathSegmentSeparator) {
		if !isDirectory {
			return false
		}
		normalizedPath += pathSegmentSeparator
	}
	isMatched, matchError := doublestar.Match(pattern, normalizedPath)
	return matchError == nil && isMatched
}

// IsValidPattern reports whether the pattern is syntactically well formed.
func IsValidPattern(pattern string) bool {
	return doublestar.ValidatePattern(pattern)
}

func matchesAny(normalizedPath string, isDirectory bool, patterns []string) bool {
	for _, pattern := range patterns {
		if Matches(normalizedPath, isDirectory, pattern) {
			return true
		}
	}
	return false
}
