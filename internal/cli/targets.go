package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/services/clipboard"
	"github.com/temirov/prompter/internal/services/confirm"
)

const (
	clipboardOverwriteQuestion = "Clipboard already has content. Do you want to overwrite it?"
	fileOverwriteQuestionFmt   = "%s already has content (%s). Do you want to overwrite it?"
	outputFilePermissions      = 0o644

	infoCopiedToClipboard       = "Summary copied to clipboard."
	infoClipboardNotOverwritten = "Clipboard content was not overwritten."
	infoWrittenToFile           = "Summary written to file."
	infoFileNotOverwritten      = "File content was not overwritten."
	warningClipboardRead        = "Warning: could not read clipboard; copying without comparison"
	warningClipboardUnavailable = "Warning: clipboard unavailable; summary was not copied"

	errorWriteStdoutFormat = "write summary to stdout: %w"
	errorReadOutputFormat  = "read existing output %s: %w"
	errorWriteOutputFormat = "write summary to %s: %w"
)

// deliverToClipboard copies the summary, asking first when the clipboard holds different non-empty text.
// A failing clipboard is reported as a warning and never aborts the run.
func deliverToClipboard(summaryText string, clipboardService clipboard.Clipboard, prompter *confirm.Prompter, logger *zap.Logger) error {
	currentContent, readError := clipboardService.Read()
	if readError != nil {
		logger.Warn(warningClipboardRead, zap.Error(readError))
	} else if currentContent != "" && currentContent != summaryText {
		accepted, confirmError := prompter.Confirm(clipboardOverwriteQuestion)
		if confirmError != nil {
			return confirmError
		}
		if !accepted {
			logger.Info(infoClipboardNotOverwritten)
			return nil
		}
	}
	if copyError := clipboardService.Copy(summaryText); copyError != nil {
		logger.Warn(warningClipboardUnavailable, zap.Error(copyError))
		return nil
	}
	logger.Info(infoCopiedToClipboard)
	return nil
}

// deliverToFile writes the summary to outputPath. An existing file with different content is
// replaced only after the change statistics were shown and the overwrite confirmed.
func deliverToFile(summaryText string, outputPath string, prompter *confirm.Prompter, logger *zap.Logger) error {
	// #nosec G304
	existingContent, readError := os.ReadFile(outputPath)
	switch {
	case readError == nil:
		if string(existingContent) != summaryText {
			changeStats := confirm.DescribeChanges(string(existingContent), summaryText)
			accepted, confirmError := prompter.Confirm(fmt.Sprintf(fileOverwriteQuestionFmt, outputPath, changeStats))
			if confirmError != nil {
				return confirmError
			}
			if !accepted {
				logger.Info(infoFileNotOverwritten, zap.String("path", outputPath))
				return nil
			}
		}
	case !errors.Is(readError, fs.ErrNotExist):
		return fmt.Errorf(errorReadOutputFormat, outputPath, readError)
	}

	if writeError := os.WriteFile(outputPath, []byte(summaryText), outputFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, outputPath, writeError)
	}
	logger.Info(infoWrittenToFile, zap.String("path", outputPath))
	return nil
}
