// Package utils contains general helper functions used across the prompter tool.
package utils

import (
	"path/filepath"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the settings file stored in the global configuration directory.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the settings file looked up in the working directory.
	LocalConfigFileName = ".prompter.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global settings.
	GlobalConfigDirectoryName = ".prompter"
	// EnvironmentFileName is the dotenv file loaded before reading environment overrides.
	EnvironmentFileName = ".env"
)

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the slash-separated relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
