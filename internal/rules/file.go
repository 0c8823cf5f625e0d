package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/classifier"
	"github.com/temirov/prompter/internal/types"
)

const (
	// FileName is the rules file looked up in the working directory.
	FileName = ".prompter_rules"

	defaultLevelKey        = "default_level"
	keyValueSeparator      = "="
	sectionHeaderPrefix    = "["
	sectionHeaderSuffix    = "]"
	semicolonCommentPrefix = ";"
	hashCommentPrefix      = "#"
	rulesFilePermissions   = 0o644

	warningUnknownSection   = "Warning: unknown section in rules file; its patterns are kept but never consulted"
	warningStrayLine        = "Warning: line outside of any section"
	warningMalformedDefault = "Warning: malformed default_level line"
	warningInvalidDefault   = "Warning: invalid default_level value; keeping previous level"
	warningInvalidPattern   = "Warning: pattern is not a valid glob and will never match"
	infoCreatedRulesFile    = "Created default rules file"

	errorOpenRulesFormat   = "open rules file %s: %w"
	errorReadRulesFormat   = "read rules file %s: %w"
	errorWriteRulesFormat  = "write rules file %s: %w"
	errorStatRulesFormat   = "inspect rules file %s: %w"
	errorScanRulesFormat   = "scan rules: %w"
	defaultLevelLineFormat = "%s = %s\n"
)

const defaultRulesTemplateHeader = `; prompter rules
; default_level applies to entries no pattern matches (FULL or TREE-ONLY).
; Patterns use shell globs relative to the project root: "*" and "?" stay
; within one path segment, "**/" spans directories, a trailing "/" matches
; directories only. IGNORE wins over FULL, FULL wins over TREE-ONLY.
`

var defaultIgnorePatterns = []string{
	".git/",
	".env",
	FileName,
	"**/node_modules/",
	"**/__pycache__/",
	"**/*.pyc",
	"**/.DS_Store",
}

// DefaultConfiguration returns the rule set written for a fresh project.
func DefaultConfiguration(defaultLevel types.InclusionLevel) types.PatternConfiguration {
	if defaultLevel == "" {
		defaultLevel = types.InclusionLevelTreeOnly
	}
	return types.PatternConfiguration{
		DefaultLevel:   defaultLevel,
		IgnorePatterns: append([]string{}, defaultIgnorePatterns...),
	}
}

// Parse reads the rules text format. Malformed input is reported through logger and tolerated.
func Parse(reader io.Reader, logger *zap.Logger) (types.PatternConfiguration, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	configuration := types.PatternConfiguration{DefaultLevel: types.InclusionLevelTreeOnly}
	var currentSection Section
	unknownSectionIndex := -1

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, semicolonCommentPrefix) || strings.HasPrefix(trimmedLine, hashCommentPrefix) {
			continue
		}

		if strings.HasPrefix(trimmedLine, defaultLevelKey) {
			_, rawValue, found := strings.Cut(trimmedLine, keyValueSeparator)
			if !found {
				logger.Warn(warningMalformedDefault, zap.Int("line", lineNumber), zap.String("text", trimmedLine))
				continue
			}
			level, parseError := types.ParseInclusionLevel(rawValue)
			if parseError != nil {
				logger.Warn(warningInvalidDefault, zap.Int("line", lineNumber), zap.Error(parseError))
				continue
			}
			configuration.DefaultLevel = level
			continue
		}

		if strings.HasPrefix(trimmedLine, sectionHeaderPrefix) && strings.HasSuffix(trimmedLine, sectionHeaderSuffix) {
			sectionName := strings.TrimSpace(trimmedLine[1 : len(trimmedLine)-1])
			if section, sectionError := ParseSection(sectionName); sectionError == nil {
				currentSection = section
				unknownSectionIndex = -1
				continue
			}
			logger.Warn(warningUnknownSection, zap.Int("line", lineNumber), zap.String("section", sectionName))
			currentSection = ""
			unknownSectionIndex = findOrAppendSection(&configuration, sectionName)
			continue
		}

		switch {
		case currentSection != "":
			if !classifier.IsValidPattern(trimmedLine) {
				logger.Warn(warningInvalidPattern, zap.Int("line", lineNumber), zap.String("pattern", trimmedLine))
			}
			configuration = withPatterns(configuration, currentSection, append(Patterns(configuration, currentSection), trimmedLine))
		case unknownSectionIndex >= 0:
			unknownSection := &configuration.UnknownSections[unknownSectionIndex]
			unknownSection.Patterns = append(unknownSection.Patterns, trimmedLine)
		default:
			logger.Warn(warningStrayLine, zap.Int("line", lineNumber), zap.String("text", trimmedLine))
		}
	}
	if scanError := scanner.Err(); scanError != nil {
		return types.PatternConfiguration{}, fmt.Errorf(errorScanRulesFormat, scanError)
	}
	return configuration, nil
}

func findOrAppendSection(configuration *types.PatternConfiguration, sectionName string) int {
	for sectionIndex, section := range configuration.UnknownSections {
		if section.Name == sectionName {
			return sectionIndex
		}
	}
	configuration.UnknownSections = append(configuration.UnknownSections, types.PatternSection{Name: sectionName})
	return len(configuration.UnknownSections) - 1
}

// Format renders the configuration in canonical rules-file form.
func Format(configuration types.PatternConfiguration) string {
	var builder strings.Builder
	defaultLevel := configuration.DefaultLevel
	if defaultLevel == "" {
		defaultLevel = types.InclusionLevelTreeOnly
	}
	fmt.Fprintf(&builder, defaultLevelLineFormat, defaultLevelKey, defaultLevel)
	for _, section := range Sections {
		writeSection(&builder, section.Header(), Patterns(configuration, section))
	}
	for _, unknownSection := range configuration.UnknownSections {
		writeSection(&builder, sectionHeaderPrefix+unknownSection.Name+sectionHeaderSuffix, unknownSection.Patterns)
	}
	return builder.String()
}

func writeSection(builder *strings.Builder, header string, patterns []string) {
	builder.WriteString("\n")
	builder.WriteString(header)
	builder.WriteString("\n")
	for _, pattern := range patterns {
		builder.WriteString(pattern)
		builder.WriteString("\n")
	}
}

// Load parses the rules file at path.
//
// #nosec G304
func Load(path string, logger *zap.Logger) (types.PatternConfiguration, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return types.PatternConfiguration{}, fmt.Errorf(errorOpenRulesFormat, path, openError)
	}
	defer fileHandle.Close()

	configuration, parseError := Parse(fileHandle, logger)
	if parseError != nil {
		return types.PatternConfiguration{}, fmt.Errorf(errorReadRulesFormat, path, parseError)
	}
	return configuration, nil
}

// Save writes the configuration to path, replacing any previous content.
func Save(path string, configuration types.PatternConfiguration) error {
	if writeError := os.WriteFile(path, []byte(Format(configuration)), rulesFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteRulesFormat, path, writeError)
	}
	return nil
}

// LoadOrCreate loads the rules file, writing the default template first when it does not exist.
// The boolean result reports whether the file was created.
func LoadOrCreate(path string, defaultLevel types.InclusionLevel, logger *zap.Logger) (types.PatternConfiguration, bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	created := false
	if _, statError := os.Stat(path); statError != nil {
		if !os.IsNotExist(statError) {
			return types.PatternConfiguration{}, false, fmt.Errorf(errorStatRulesFormat, path, statError)
		}
		template := defaultRulesTemplateHeader + Format(DefaultConfiguration(defaultLevel))
		if writeError := os.WriteFile(path, []byte(template), rulesFilePermissions); writeError != nil {
			return types.PatternConfiguration{}, false, fmt.Errorf(errorWriteRulesFormat, path, writeError)
		}
		logger.Info(infoCreatedRulesFile, zap.String("path", path))
		created = true
	}
	configuration, loadError := Load(path, logger)
	if loadError != nil {
		return types.PatternConfiguration{}, created, loadError
	}
	return configuration, created, nil
}
