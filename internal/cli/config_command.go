package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/config"
	"github.com/temirov/prompter/internal/rules"
	"github.com/temirov/prompter/internal/types"
)

const (
	configUse              = types.CommandConfig
	configShortDescription = "edit the rules file"
	// configLongDescription provides detailed help for the config command.
	configLongDescription = `Without a subcommand, open the interactive rules editor.
Subcommands edit the rules file directly. Pattern indexes are 1-based as listed by "config show".`
	// configUsageExample demonstrates config command usage.
	configUsageExample = `  # Open the interactive editor
  prompter config

  # Show every pattern in all sections together with its index
  prompter config show

  # Include Go sources in full
  prompter config add FULL '**/*.go'

  # Replace the second ignore pattern and make unmatched files FULL by default
  prompter config edit IGNORE 2 'dist/'
  prompter config default FULL`

	configShowUse      = "show"
	configAddUse       = "add <section> <pattern>"
	configEditUse      = "edit <section> <index> <pattern>"
	configDeleteUse    = "delete <section> <index>"
	configDefaultUse   = "default <level>"
	configShowShort    = "print the rules file"
	configAddShort     = "add a pattern to a section"
	configEditShort    = "replace a pattern in a section"
	configDeleteShort  = "delete a pattern from a section"
	configDefaultShort = "set the default inclusion level"

	configRulesFlagDescription = "rules file (default " + rules.FileName + " in the working directory)"
	patternListingFormat       = "%s\n"
	indexedPatternFormat       = "  %d. %s\n"
	defaultLevelListingFormat  = "default_level = %s\n"

	infoRulesSaved    = "Rules saved"
	infoRulesNotSaved = "Rules editor closed without saving"

	errorInvalidIndexFormat = "invalid index %q: expected a positive number"
)

type rulesSession struct {
	dependencies     Dependencies
	settingsPath     *string
	rulesPathFlag    string
	workingDirectory string
	rulesPath        string
}

// load resolves the rules path from the flag, the settings, and the default name, creating the file when missing.
func (session *rulesSession) load(command *cobra.Command) (types.PatternConfiguration, error) {
	workingDirectory, workingDirectoryError := session.dependencies.workingDirectory()
	if workingDirectoryError != nil {
		return types.PatternConfiguration{}, workingDirectoryError
	}
	settings, settingsError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory:  workingDirectory,
		ExplicitFilePath:  *session.settingsPath,
		HomeDirectory:     session.dependencies.HomeDirectory,
		LookupEnvironment: session.dependencies.LookupEnvironment,
	})
	if settingsError != nil {
		return types.PatternConfiguration{}, settingsError
	}
	rulesPath := session.rulesPathFlag
	if !command.Flags().Changed(rulesFlagName) && settings.Summarize.RulesFile != "" {
		rulesPath = settings.Summarize.RulesFile
	}
	if rulesPath == "" {
		rulesPath = rules.FileName
	}
	session.workingDirectory = workingDirectory
	session.rulesPath = resolveAgainst(workingDirectory, rulesPath)
	configuration, _, loadError := rules.LoadOrCreate(session.rulesPath, settings.Summarize.DefaultLevel, session.dependencies.Logger)
	return configuration, loadError
}

func (session *rulesSession) save(configuration types.PatternConfiguration) error {
	if saveError := rules.Save(session.rulesPath, configuration); saveError != nil {
		return saveError
	}
	session.dependencies.Logger.Info(infoRulesSaved, zap.String("path", session.rulesPath))
	return nil
}

// edit loads the rules, applies change, and saves the result.
func (session *rulesSession) edit(command *cobra.Command, change func(types.PatternConfiguration) (types.PatternConfiguration, error)) error {
	configuration, loadError := session.load(command)
	if loadError != nil {
		return loadError
	}
	updated, changeError := change(configuration)
	if changeError != nil {
		return changeError
	}
	return session.save(updated)
}

// createConfigCommand returns the config command with its subcommands.
func createConfigCommand(dependencies Dependencies, settingsPath *string) *cobra.Command {
	session := &rulesSession{dependencies: dependencies, settingsPath: settingsPath}

	configCommand := &cobra.Command{
		Use:     configUse,
		Short:   configShortDescription,
		Long:    configLongDescription,
		Example: configUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, loadError := session.load(command)
			if loadError != nil {
				return loadError
			}
			result, editorError := dependencies.RunEditor(configuration, dependencies.Input, dependencies.Output)
			if editorError != nil {
				return editorError
			}
			if !result.Saved {
				dependencies.Logger.Info(infoRulesNotSaved)
				return nil
			}
			return session.save(result.Configuration)
		},
	}
	configCommand.PersistentFlags().StringVar(&session.rulesPathFlag, rulesFlagName, "", configRulesFlagDescription)

	showCommand := &cobra.Command{
		Use:   configShowUse,
		Short: configShowShort,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, loadError := session.load(command)
			if loadError != nil {
				return loadError
			}
			writeRulesListing(dependencies.Output, configuration)
			return nil
		},
	}

	addCommand := &cobra.Command{
		Use:   configAddUse,
		Short: configAddShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			section, sectionError := rules.ParseSection(arguments[0])
			if sectionError != nil {
				return sectionError
			}
			return session.edit(command, func(configuration types.PatternConfiguration) (types.PatternConfiguration, error) {
				return rules.AddPattern(configuration, section, arguments[1])
			})
		},
	}

	editCommand := &cobra.Command{
		Use:   configEditUse,
		Short: configEditShort,
		Args:  cobra.ExactArgs(3),
		RunE: func(command *cobra.Command, arguments []string) error {
			section, sectionError := rules.ParseSection(arguments[0])
			if sectionError != nil {
				return sectionError
			}
			index, indexError := parsePatternIndex(arguments[1])
			if indexError != nil {
				return indexError
			}
			return session.edit(command, func(configuration types.PatternConfiguration) (types.PatternConfiguration, error) {
				return rules.ReplacePattern(configuration, section, index, arguments[2])
			})
		},
	}

	deleteCommand := &cobra.Command{
		Use:   configDeleteUse,
		Short: configDeleteShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			section, sectionError := rules.ParseSection(arguments[0])
			if sectionError != nil {
				return sectionError
			}
			index, indexError := parsePatternIndex(arguments[1])
			if indexError != nil {
				return indexError
			}
			return session.edit(command, func(configuration types.PatternConfiguration) (types.PatternConfiguration, error) {
				return rules.RemovePattern(configuration, section, index)
			})
		},
	}

	defaultCommand := &cobra.Command{
		Use:   configDefaultUse,
		Short: configDefaultShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			level, levelError := types.ParseInclusionLevel(arguments[0])
			if levelError != nil {
				return levelError
			}
			return session.edit(command, func(configuration types.PatternConfiguration) (types.PatternConfiguration, error) {
				return rules.SetDefaultLevel(configuration, level), nil
			})
		},
	}

	configCommand.AddCommand(showCommand, addCommand, editCommand, deleteCommand, defaultCommand)
	return configCommand
}

// parsePatternIndex converts a 1-based index argument to a 0-based index.
func parsePatternIndex(argument string) (int, error) {
	index, parseError := strconv.Atoi(argument)
	if parseError != nil || index < 1 {
		return 0, fmt.Errorf(errorInvalidIndexFormat, argument)
	}
	return index - 1, nil
}

func writeRulesListing(writer io.Writer, configuration types.PatternConfiguration) {
	fmt.Fprintf(writer, defaultLevelListingFormat, configuration.DefaultLevel)
	for _, section := range rules.Sections {
		fmt.Fprintf(writer, patternListingFormat, section.Header())
		for index, pattern := range rules.Patterns(configuration, section) {
			fmt.Fprintf(writer, indexedPatternFormat, index+1, pattern)
		}
	}
}
