// Package config loads layered prompter settings from YAML files, a dotenv file, and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/temirov/prompter/internal/types"
	"github.com/temirov/prompter/internal/utils"
)

const (
	// EnvironmentPrefix prefixes every environment override, e.g. PROMPTER_SUMMARIZE_OUTPUT.
	EnvironmentPrefix = "PROMPTER"

	environmentKeySeparator = "_"
	settingsKeySeparator    = "."
)

// environmentKeys lists the settings that can be overridden from the environment.
var environmentKeys = []string{
	"summarize.rules_file",
	"summarize.root_name",
	"summarize.output",
	"summarize.clipboard",
	"summarize.assume_yes",
	"summarize.default_level",
	"summarize.tokens.enabled",
	"summarize.tokens.model",
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// HomeDirectory overrides the user home directory used for the global file.
	HomeDirectory string
	// LookupEnvironment replaces os.LookupEnv.
	LookupEnvironment func(key string) (string, bool)
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Summarize SummarizeConfiguration `mapstructure:"summarize"`
}

// SummarizeConfiguration defines defaults for the summarize command.
type SummarizeConfiguration struct {
	RulesFile    string               `mapstructure:"rules_file"`
	RootName     string               `mapstructure:"root_name"`
	Output       string               `mapstructure:"output"`
	Clipboard    *bool                `mapstructure:"clipboard"`
	AssumeYes    *bool                `mapstructure:"assume_yes"`
	DefaultLevel types.InclusionLevel `mapstructure:"default_level"`
	Tokens       TokenConfiguration   `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file, the local file,
// and the environment, each layer overriding the fields it sets.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	environmentConfig, environmentErr := loadConfigurationFromEnvironment(workingDirectory, options.LookupEnvironment)
	if environmentErr != nil {
		return ApplicationConfiguration{}, environmentErr
	}
	return merged.Merge(environmentConfig), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	return decodeConfiguration(reader, path)
}

// loadConfigurationFromEnvironment reads PROMPTER_* overrides. Values exported in the process
// environment win over those in the working directory's .env file.
func loadConfigurationFromEnvironment(workingDirectory string, lookupEnvironment func(string) (string, bool)) (ApplicationConfiguration, error) {
	if lookupEnvironment == nil {
		lookupEnvironment = os.LookupEnv
	}
	dotenvValues := map[string]string{}
	if workingDirectory != "" {
		dotenvPath := filepath.Join(workingDirectory, utils.EnvironmentFileName)
		values, readErr := godotenv.Read(dotenvPath)
		switch {
		case readErr == nil:
			dotenvValues = values
		case !errors.Is(readErr, fs.ErrNotExist):
			return ApplicationConfiguration{}, fmt.Errorf("read environment file %s: %w", dotenvPath, readErr)
		}
	}

	reader := viper.New()
	for _, settingsKey := range environmentKeys {
		environmentKey := EnvironmentKey(settingsKey)
		if value, found := lookupEnvironment(environmentKey); found {
			reader.Set(settingsKey, value)
			continue
		}
		if value, found := dotenvValues[environmentKey]; found {
			reader.Set(settingsKey, value)
		}
	}
	return decodeConfiguration(reader, EnvironmentPrefix+environmentKeySeparator+"*")
}

// EnvironmentKey converts a dotted settings key into its environment variable name.
func EnvironmentKey(settingsKey string) string {
	replacer := strings.NewReplacer(settingsKeySeparator, environmentKeySeparator)
	return EnvironmentPrefix + environmentKeySeparator + strings.ToUpper(replacer.Replace(settingsKey))
}

func decodeConfiguration(reader *viper.Viper, source string) (ApplicationConfiguration, error) {
	var config ApplicationConfiguration
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(inclusionLevelDecodeHook))
	if decodeErr := reader.Unmarshal(&config, decodeHook); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", source, decodeErr)
	}
	return config, nil
}

// inclusionLevelDecodeHook validates default_level values while decoding.
func inclusionLevelDecodeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(types.InclusionLevel("")) {
		return data, nil
	}
	rawLevel, _ := data.(string)
	if strings.TrimSpace(rawLevel) == "" {
		return types.InclusionLevel(""), nil
	}
	return types.ParseInclusionLevel(rawLevel)
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Summarize = result.Summarize.merge(override.Summarize)
	return result
}

func (config SummarizeConfiguration) merge(override SummarizeConfiguration) SummarizeConfiguration {
	result := config
	if override.RulesFile != "" {
		result.RulesFile = override.RulesFile
	}
	if override.RootName != "" {
		result.RootName = override.RootName
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.AssumeYes != nil {
		result.AssumeYes = cloneBool(override.AssumeYes)
	}
	if override.DefaultLevel != "" {
		result.DefaultLevel = override.DefaultLevel
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
