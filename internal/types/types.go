// Package types defines every cross‑package data structure used by the prompter CLI.
package types

import (
	"fmt"
	"strings"
)

// InclusionLevel controls how much of an entry appears in a summary.
type InclusionLevel string

const (
	// InclusionLevelFull shows the entry name and, for files, the full content.
	InclusionLevelFull InclusionLevel = "FULL"
	// InclusionLevelTreeOnly shows the entry name only.
	InclusionLevelTreeOnly InclusionLevel = "TREE-ONLY"

	CommandSummarize = "summarize"
	CommandConfig    = "config"
	CommandInit      = "init"

	// DefaultRootName labels the root line of every rendered tree.
	DefaultRootName = "project"

	invalidInclusionLevelFormat = "invalid inclusion level %q (expected %s or %s)"
)

// ParseInclusionLevel converts user input into an InclusionLevel, ignoring case and surrounding spaces.
func ParseInclusionLevel(input string) (InclusionLevel, error) {
	switch InclusionLevel(strings.ToUpper(strings.TrimSpace(input))) {
	case InclusionLevelFull:
		return InclusionLevelFull, nil
	case InclusionLevelTreeOnly:
		return InclusionLevelTreeOnly, nil
	default:
		return "", fmt.Errorf(invalidInclusionLevelFormat, input, InclusionLevelFull, InclusionLevelTreeOnly)
	}
}

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	AbsolutePath string
	IsDir        bool
}

// PatternSection holds the patterns listed under a section header the classifier does not consult.
type PatternSection struct {
	Name     string
	Patterns []string
}

// PatternConfiguration is the rule set loaded once per invocation.
type PatternConfiguration struct {
	DefaultLevel    InclusionLevel
	IgnorePatterns  []string
	FullPatterns    []string
	TreePatterns    []string
	UnknownSections []PatternSection
}

// Clone returns a deep copy so edits never alias the receiver's slices.
func (configuration PatternConfiguration) Clone() PatternConfiguration {
	cloned := PatternConfiguration{
		DefaultLevel:   configuration.DefaultLevel,
		IgnorePatterns: cloneStrings(configuration.IgnorePatterns),
		FullPatterns:   cloneStrings(configuration.FullPatterns),
		TreePatterns:   cloneStrings(configuration.TreePatterns),
	}
	for _, section := range configuration.UnknownSections {
		cloned.UnknownSections = append(cloned.UnknownSections, PatternSection{
			Name:     section.Name,
			Patterns: cloneStrings(section.Patterns),
		})
	}
	return cloned
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string{}, values...)
}

// TreeNode is one filesystem entry below the scan root. Ignored entries never become nodes.
type TreeNode struct {
	Name           string
	Path           string
	RelativePath   string
	InclusionLevel InclusionLevel
	IsDirectory    bool
	Children       []*TreeNode
	// OmittedEntries counts directory entries dropped by ignore patterns.
	OmittedEntries int
	// Unreadable marks a directory whose listing failed with a permission error.
	Unreadable bool
}

// FileContent is one file included in the content dump.
type FileContent struct {
	RelativePath string
	Path         string
	Content      string
	SizeBytes    int64
}

// OutputSummary captures aggregate information about rendered files.
type OutputSummary struct {
	TotalFiles  int
	TotalSize   string
	TotalTokens int
	Model       string
}
