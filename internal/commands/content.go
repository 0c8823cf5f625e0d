package commands

import (
	"os"

	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/types"
	"github.com/temirov/prompter/internal/utils"
)

const (
	warningFileRead = "Warning: could not read file; excluded from content dump"
	warningFileText = "Warning: file is not text; excluded from content dump"
)

// CollectFileContents gathers, in tree order, every FULL file below rootNode.
// Files that cannot be read or are not text are logged and skipped.
func CollectFileContents(rootNode *types.TreeNode, logger *zap.Logger) []types.FileContent {
	if logger == nil {
		logger = zap.NewNop()
	}
	var fileContents []types.FileContent
	collectFileContents(rootNode, logger, &fileContents)
	return fileContents
}

func collectFileContents(node *types.TreeNode, logger *zap.Logger, fileContents *[]types.FileContent) {
	if node == nil {
		return
	}
	if !node.IsDirectory && node.InclusionLevel == types.InclusionLevelFull {
		if fileContent, ok := readFileContent(node, logger); ok {
			*fileContents = append(*fileContents, fileContent)
		}
	}
	for _, child := range node.Children {
		collectFileContents(child, logger, fileContents)
	}
}

// #nosec G304
func readFileContent(node *types.TreeNode, logger *zap.Logger) (types.FileContent, bool) {
	fileBytes, fileReadError := os.ReadFile(node.Path)
	if fileReadError != nil {
		logger.Warn(warningFileRead, zap.String("path", node.RelativePath), zap.Error(fileReadError))
		return types.FileContent{}, false
	}
	if utils.IsBinary(fileBytes) {
		logger.Warn(warningFileText, zap.String("path", node.RelativePath))
		return types.FileContent{}, false
	}
	return types.FileContent{
		RelativePath: node.RelativePath,
		Path:         node.Path,
		Content:      string(fileBytes),
		SizeBytes:    int64(len(fileBytes)),
	}, true
}
