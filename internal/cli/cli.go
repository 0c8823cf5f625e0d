// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/editor"
	"github.com/temirov/prompter/internal/services/clipboard"
	"github.com/temirov/prompter/internal/types"
	"github.com/temirov/prompter/internal/utils"
)

const (
	versionFlagName      = "version"
	settingsFlagName     = "config-file"
	versionTemplate      = "prompter version: %s\n"
	defaultPath          = "."
	rootUse              = "prompter"
	rootShortDescription = "prompter command line interface"
	rootLongDescription  = `prompter summarizes a project directory into one block of text for LLM prompts.
The summary is an ASCII tree of the project followed by the content of every file marked FULL.
Rules in .prompter_rules decide which entries are ignored, shown in full, or listed by name only.`
	versionFlagDescription  = "display application version"
	settingsFlagDescription = "settings file to use instead of " + utils.LocalConfigFileName

	guiUse                     = "gui"
	guiShortDescription        = "launch the graphical interface"
	guiUnderDevelopmentMessage = "GUI functionality is under development."

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNotDirectoryFormat reports a summarize root that is a file.
	errorNotDirectoryFormat = "path '%s' is not a directory"
)

// EditorRunner runs the interactive rules editor.
type EditorRunner func(configuration types.PatternConfiguration, input io.Reader, output io.Writer) (editor.Result, error)

// Dependencies carries the collaborators of every command. Zero values are replaced with
// the process defaults.
type Dependencies struct {
	Logger            *zap.Logger
	Clipboard         clipboard.Clipboard
	Input             io.Reader
	Output            io.Writer
	WorkingDirectory  string
	HomeDirectory     string
	LookupEnvironment func(key string) (string, bool)
	RunEditor         EditorRunner
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.Input == nil {
		dependencies.Input = os.Stdin
	}
	if dependencies.Output == nil {
		dependencies.Output = os.Stdout
	}
	if dependencies.RunEditor == nil {
		dependencies.RunEditor = editor.Run
	}
	return dependencies
}

func (dependencies Dependencies) workingDirectory() (string, error) {
	if dependencies.WorkingDirectory != "" {
		return dependencies.WorkingDirectory, nil
	}
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	return workingDirectory, nil
}

// Execute runs the prompter application.
func Execute(logger *zap.Logger) error {
	rootCommand := NewRootCommand(Dependencies{Logger: logger})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var showVersion bool
	var settingsPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.SetIn(dependencies.Input)
	rootCommand.SetOut(dependencies.Output)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&settingsPath, settingsFlagName, "", settingsFlagDescription)
	rootCommand.AddCommand(
		createSummarizeCommand(dependencies, &settingsPath),
		createConfigCommand(dependencies, &settingsPath),
		createInitCommand(dependencies),
		createGUICommand(dependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func createGUICommand(dependencies Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   guiUse,
		Short: guiShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			fmt.Fprintln(dependencies.Output, guiUnderDevelopmentMessage)
			return nil
		},
	}
}

// resolveDirectoryPath converts an input path to absolute form and checks that it is an existing directory.
func resolveDirectoryPath(workingDirectory string, inputPath string) (types.ValidatedPath, error) {
	candidatePath := inputPath
	if !filepath.IsAbs(candidatePath) {
		candidatePath = filepath.Join(workingDirectory, candidatePath)
	}
	absolutePath, absolutePathError := filepath.Abs(candidatePath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, fmt.Errorf(errorPathMissingFormat, inputPath)
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, fmt.Errorf(errorNotDirectoryFormat, inputPath)
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}

// resolveAgainst joins a relative path onto baseDirectory.
func resolveAgainst(baseDirectory string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDirectory, path)
}
