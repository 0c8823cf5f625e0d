// Package commands contains the core logic that walks, classifies, and summarizes a project.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/classifier"
	"github.com/temirov/prompter/internal/types"
	"github.com/temirov/prompter/internal/utils"
)

const (
	// warningPermissionDenied is logged when a directory listing is not permitted.
	warningPermissionDenied = "Warning: permission denied; directory listed as empty"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorStatRootFormat is used when the scan root cannot be inspected.
	errorStatRootFormat = "inspecting root %s: %w"

	// errorRootNotDirectoryFormat is used when the scan root is a file.
	errorRootNotDirectoryFormat = "root %s is not a directory"

	// errorBuildTreeFormat is used when building the tree fails.
	errorBuildTreeFormat = "building tree for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// Build walks rootDirectoryPath depth-first and returns the classified tree.
// Permission errors are logged and leave the directory childless; other read errors are returned.
func (treeBuilder *TreeBuilder) Build(rootDirectoryPath string) (*types.TreeNode, error) {
	absoluteRootDirPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootDirPath)
	if rootStatError != nil {
		return nil, fmt.Errorf(errorStatRootFormat, rootDirectoryPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectoryFormat, rootDirectoryPath)
	}

	rootNode := &types.TreeNode{
		Name:           treeBuilder.rootName(),
		Path:           absoluteRootDirPath,
		RelativePath:   ".",
		InclusionLevel: treeBuilder.defaultLevel(),
		IsDirectory:    true,
	}
	if buildError := treeBuilder.buildTreeNodes(rootNode, absoluteRootDirPath); buildError != nil {
		return nil, fmt.Errorf(errorBuildTreeFormat, rootDirectoryPath, buildError)
	}
	return rootNode, nil
}

// buildTreeNodes recursively attaches classified children to a directory node.
func (treeBuilder *TreeBuilder) buildTreeNodes(directoryNode *types.TreeNode, rootDirectoryPath string) error {
	// os.ReadDir returns entries sorted by file name.
	directoryEntries, readDirectoryError := os.ReadDir(directoryNode.Path)
	if readDirectoryError != nil {
		if errors.Is(readDirectoryError, fs.ErrPermission) {
			treeBuilder.logger().Warn(warningPermissionDenied, zap.String("path", directoryNode.Path))
			directoryNode.Unreadable = true
			return nil
		}
		return fmt.Errorf(errorReadDirectoryFormat, directoryNode.Path, readDirectoryError)
	}

	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryNode.Path, directoryEntry.Name())
		relativeChildPath := utils.RelativePathOrSelf(childPath, rootDirectoryPath)
		isDirectory := directoryEntry.IsDir()

		decision := classifier.Classify(relativeChildPath, isDirectory, treeBuilder.Configuration)
		inclusionLevel, included := decision.InclusionLevel()
		if !included {
			directoryNode.OmittedEntries++
			continue
		}

		childNode := &types.TreeNode{
			Name:           directoryEntry.Name(),
			Path:           childPath,
			RelativePath:   relativeChildPath,
			InclusionLevel: inclusionLevel,
			IsDirectory:    isDirectory,
		}
		if isDirectory {
			if buildError := treeBuilder.buildTreeNodes(childNode, rootDirectoryPath); buildError != nil {
				return buildError
			}
		}
		directoryNode.Children = append(directoryNode.Children, childNode)
	}
	return nil
}
