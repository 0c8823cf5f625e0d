package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/output"
	"github.com/temirov/prompter/internal/tokenizer"
	"github.com/temirov/prompter/internal/types"
	"github.com/temirov/prompter/internal/utils"
)

const warningTokenCount = "Warning: failed to count summary tokens"

// SummarizeOptions carries the collaborators of a summarize run.
type SummarizeOptions struct {
	RootName     string
	Logger       *zap.Logger
	TokenCounter tokenizer.Counter
	TokenModel   string
}

// SummaryResult is the rendered summary together with the tree and dump it was produced from.
type SummaryResult struct {
	Text       string
	Tree       *types.TreeNode
	Files      []types.FileContent
	Statistics types.OutputSummary
}

// Summarize builds the tree below rootDirectoryPath, collects FULL file contents, and renders
// the summary text. The same directory and configuration always produce the same text.
func Summarize(rootDirectoryPath string, configuration types.PatternConfiguration, options SummarizeOptions) (SummaryResult, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	treeBuilder := &TreeBuilder{
		Configuration: configuration,
		RootName:      options.RootName,
		Logger:        logger,
	}
	rootNode, buildError := treeBuilder.Build(rootDirectoryPath)
	if buildError != nil {
		return SummaryResult{}, buildError
	}
	fileContents := CollectFileContents(rootNode, logger)
	summaryText := output.RenderSummary(rootNode, fileContents)

	var totalBytes int64
	for _, fileContent := range fileContents {
		totalBytes += fileContent.SizeBytes
	}
	statistics := types.OutputSummary{
		TotalFiles: len(fileContents),
		TotalSize:  utils.FormatFileSize(totalBytes),
	}
	if options.TokenCounter != nil {
		countResult, countError := tokenizer.CountBytes(options.TokenCounter, []byte(summaryText))
		if countError != nil {
			logger.Warn(warningTokenCount, zap.Error(countError))
		} else if countResult.Counted {
			statistics.TotalTokens = countResult.Tokens
			statistics.Model = options.TokenModel
		}
	}

	return SummaryResult{
		Text:       summaryText,
		Tree:       rootNode,
		Files:      fileContents,
		Statistics: statistics,
	}, nil
}
