package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/prompter/internal/commands"
	"github.com/temirov/prompter/internal/config"
	"github.com/temirov/prompter/internal/output"
	"github.com/temirov/prompter/internal/rules"
	"github.com/temirov/prompter/internal/services/confirm"
	"github.com/temirov/prompter/internal/tokenizer"
	"github.com/temirov/prompter/internal/types"
)

const (
	summarizeUse              = types.CommandSummarize + " [path]"
	summarizeAlias            = "s"
	summarizeShortDescription = "summarize a project directory (" + summarizeAlias + ")"
	// summarizeLongDescription provides detailed help for the summarize command.
	summarizeLongDescription = `Render the project tree and the content of FULL files.
The summary is printed to stdout unless --output or --clipboard is given.
Existing output that differs from the new summary is only replaced after confirmation.`
	// summarizeUsageExample demonstrates summarize command usage.
	summarizeUsageExample = `  # Print the summary of the current directory
  prompter summarize

  # Copy the summary of ./service to the clipboard, answering yes to prompts
  prompter s ./service --clipboard --yes

  # Write the summary to a file and report token usage
  prompter summarize --output summary.txt --tokens`

	outputFlagName           = "output"
	clipboardFlagName        = "clipboard"
	assumeYesFlagName        = "yes"
	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	rulesFlagName            = "rules"
	rootNameFlagName         = "root-name"
	outputFlagDescription    = "file path to store the summary"
	clipboardFlagDescription = "copy the summary to the clipboard"
	assumeYesFlagDescription = "overwrite existing output without asking"
	tokensFlagDescription    = "count tokens of the summary"
	modelFlagDescription     = "tokenizer model to use for token counting"
	rulesFlagDescription     = "rules file (default " + rules.FileName + " in the summarized directory)"
	rootNameFlagDescription  = "name shown for the root directory"
)

type summarizeOptions struct {
	outputPath    string
	clipboard     bool
	assumeYes     bool
	tokensEnabled bool
	tokenModel    string
	rulesPath     string
	rootName      string
}

// createSummarizeCommand returns the summarize subcommand.
func createSummarizeCommand(dependencies Dependencies, settingsPath *string) *cobra.Command {
	var options summarizeOptions

	summarizeCommand := &cobra.Command{
		Use:     summarizeUse,
		Aliases: []string{summarizeAlias},
		Short:   summarizeShortDescription,
		Long:    summarizeLongDescription,
		Example: summarizeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			targetPath := defaultPath
			if len(arguments) == 1 {
				targetPath = arguments[0]
			}
			workingDirectory, workingDirectoryError := dependencies.workingDirectory()
			if workingDirectoryError != nil {
				return workingDirectoryError
			}
			settings, settingsError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory:  workingDirectory,
				ExplicitFilePath:  *settingsPath,
				HomeDirectory:     dependencies.HomeDirectory,
				LookupEnvironment: dependencies.LookupEnvironment,
			})
			if settingsError != nil {
				return settingsError
			}
			effective := applySummarizeSettings(command.Flags(), options, settings.Summarize)
			return runSummarize(workingDirectory, targetPath, effective, settings.Summarize.DefaultLevel, dependencies)
		},
	}

	flagSet := summarizeCommand.Flags()
	flagSet.StringVar(&options.outputPath, outputFlagName, "", outputFlagDescription)
	registerBooleanFlag(flagSet, &options.clipboard, clipboardFlagName, false, clipboardFlagDescription)
	registerBooleanFlag(flagSet, &options.assumeYes, assumeYesFlagName, false, assumeYesFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.StringVar(&options.rulesPath, rulesFlagName, "", rulesFlagDescription)
	flagSet.StringVar(&options.rootName, rootNameFlagName, types.DefaultRootName, rootNameFlagDescription)
	return summarizeCommand
}

// applySummarizeSettings fills every option whose flag was not given on the command line from settings.
func applySummarizeSettings(flagSet *pflag.FlagSet, options summarizeOptions, settings config.SummarizeConfiguration) summarizeOptions {
	effective := options
	if !flagSet.Changed(outputFlagName) && settings.Output != "" {
		effective.outputPath = settings.Output
	}
	if !flagSet.Changed(clipboardFlagName) && settings.Clipboard != nil {
		effective.clipboard = *settings.Clipboard
	}
	if !flagSet.Changed(assumeYesFlagName) && settings.AssumeYes != nil {
		effective.assumeYes = *settings.AssumeYes
	}
	if !flagSet.Changed(tokensFlagName) && settings.Tokens.Enabled != nil {
		effective.tokensEnabled = *settings.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && settings.Tokens.Model != "" {
		effective.tokenModel = settings.Tokens.Model
	}
	if !flagSet.Changed(rulesFlagName) && settings.RulesFile != "" {
		effective.rulesPath = settings.RulesFile
	}
	if !flagSet.Changed(rootNameFlagName) && settings.RootName != "" {
		effective.rootName = settings.RootName
	}
	return effective
}

// runSummarize builds the summary of targetPath and hands it to the selected output targets.
func runSummarize(workingDirectory string, targetPath string, options summarizeOptions, defaultLevel types.InclusionLevel, dependencies Dependencies) error {
	logger := dependencies.Logger
	validatedRoot, pathError := resolveDirectoryPath(workingDirectory, targetPath)
	if pathError != nil {
		return pathError
	}

	rulesPath := options.rulesPath
	if rulesPath == "" {
		rulesPath = rules.FileName
	}
	rulesPath = resolveAgainst(validatedRoot.AbsolutePath, rulesPath)
	patternConfiguration, _, rulesError := rules.LoadOrCreate(rulesPath, defaultLevel, logger)
	if rulesError != nil {
		return rulesError
	}

	runOptions := commands.SummarizeOptions{
		RootName: options.rootName,
		Logger:   logger,
	}
	if options.tokensEnabled {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			return counterError
		}
		runOptions.TokenCounter = tokenCounter
		runOptions.TokenModel = resolvedModel
	}

	result, summarizeError := commands.Summarize(validatedRoot.AbsolutePath, patternConfiguration, runOptions)
	if summarizeError != nil {
		return summarizeError
	}

	if deliveryError := deliverSummary(result.Text, workingDirectory, options, dependencies); deliveryError != nil {
		return deliveryError
	}
	logger.Info(output.FormatSummaryLine(&result.Statistics))
	return nil
}

func deliverSummary(summaryText string, workingDirectory string, options summarizeOptions, dependencies Dependencies) error {
	if !options.clipboard && options.outputPath == "" {
		_, writeError := io.WriteString(dependencies.Output, summaryText)
		if writeError != nil {
			return fmt.Errorf(errorWriteStdoutFormat, writeError)
		}
		return nil
	}
	prompter := confirm.NewPrompter(dependencies.Input, dependencies.Output, options.assumeYes)
	if options.clipboard {
		if clipboardError := deliverToClipboard(summaryText, dependencies.Clipboard, prompter, dependencies.Logger); clipboardError != nil {
			return clipboardError
		}
	}
	if options.outputPath != "" {
		outputPath := resolveAgainst(workingDirectory, options.outputPath)
		return deliverToFile(summaryText, outputPath, prompter, dependencies.Logger)
	}
	return nil
}
