// Package confirm asks yes/no questions on a terminal and describes pending overwrites.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	questionFormat     = "%s [y/N]: "
	changeStatsFormat  = "+%d/-%d lines"
	errorReadAnswerFmt = "read answer: %w"
)

var acceptedAnswers = []string{"y", "yes"}

// Prompter asks confirmation questions. With AssumeYes every question is accepted without prompting.
type Prompter struct {
	Output    io.Writer
	AssumeYes bool

	reader *bufio.Reader
}

// NewPrompter constructs a Prompter reading answers from input.
func NewPrompter(input io.Reader, output io.Writer, assumeYes bool) *Prompter {
	return &Prompter{
		Output:    output,
		AssumeYes: assumeYes,
		reader:    bufio.NewReader(input),
	}
}

// Confirm writes question and reports whether the answer was y or yes.
// End of input counts as a refusal.
func (prompter *Prompter) Confirm(question string) (bool, error) {
	if prompter.AssumeYes {
		return true, nil
	}
	if prompter.Output != nil {
		fmt.Fprintf(prompter.Output, questionFormat, question)
	}
	if prompter.reader == nil {
		return false, nil
	}
	answer, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return false, fmt.Errorf(errorReadAnswerFmt, readError)
	}
	normalizedAnswer := strings.ToLower(strings.TrimSpace(answer))
	for _, acceptedAnswer := range acceptedAnswers {
		if normalizedAnswer == acceptedAnswer {
			return true, nil
		}
	}
	return false, nil
}

// ChangeStats counts lines added and removed between two texts.
type ChangeStats struct {
	AddedLines   int
	RemovedLines int
}

// String renders the stats as +added/-removed lines.
func (stats ChangeStats) String() string {
	return fmt.Sprintf(changeStatsFormat, stats.AddedLines, stats.RemovedLines)
}

// HasChanges reports whether any line differs.
func (stats ChangeStats) HasChanges() bool {
	return stats.AddedLines > 0 || stats.RemovedLines > 0
}

// DescribeChanges computes a line-level diff from previous to next.
func DescribeChanges(previous string, next string) ChangeStats {
	differ := diffmatchpatch.New()
	previousChars, nextChars, lineArray := differ.DiffLinesToChars(previous, next)
	diffs := differ.DiffCharsToLines(differ.DiffMain(previousChars, nextChars, false), lineArray)

	var stats ChangeStats
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.AddedLines += countLines(diff.Text)
		case diffmatchpatch.DiffDelete:
			stats.RemovedLines += countLines(diff.Text)
		}
	}
	return stats
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	lineCount := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		lineCount++
	}
	return lineCount
}
