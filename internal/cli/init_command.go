package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/config"
	"github.com/temirov/prompter/internal/types"
)

const (
	initUse                   = types.CommandInit
	initShortDescription      = "write a settings template"
	initLongDescription       = "Write a settings template to ./.prompter.yaml, or to ~/.prompter/config.yaml with --global."
	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write the global settings file"
	initForceFlagDescription  = "overwrite an existing settings file"
	infoSettingsWritten       = "Settings template written"
)

func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := dependencies.workingDirectory()
			if workingDirectoryError != nil {
				return workingDirectoryError
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
				HomeDirectory:    dependencies.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			dependencies.Logger.Info(infoSettingsWritten, zap.String("path", destinationPath))
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
