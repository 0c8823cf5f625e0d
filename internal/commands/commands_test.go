package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/prompter/internal/commands"
	"github.com/temirov/prompter/internal/types"
)

const (
	textFileName    = "a.txt"
	textFileContent = "hello\nworld"
	emptyDirName    = "b"
)

type stubCounter struct{}

func (stubCounter) Name() string { return "stub" }

func (stubCounter) CountString(input string) (int, error) { return len(input), nil }

func writeFile(testingHandle *testing.T, path string, content string) {
	testingHandle.Helper()
	require.NoError(testingHandle, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(testingHandle, os.WriteFile(path, []byte(content), 0o644))
}

func makeScenarioRoot(testingHandle *testing.T) string {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()
	writeFile(testingHandle, filepath.Join(rootDirectory, textFileName), textFileContent)
	require.NoError(testingHandle, os.Mkdir(filepath.Join(rootDirectory, emptyDirName), 0o755))
	return rootDirectory
}

func TestSummarizeTreeOnlyDefault(testingHandle *testing.T) {
	rootDirectory := makeScenarioRoot(testingHandle)
	configuration := types.PatternConfiguration{DefaultLevel: types.InclusionLevelTreeOnly}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{})
	require.NoError(testingHandle, summarizeError)

	expected := "project/\n" +
		"    ├── a.txt\n" +
		"    └── b/\n" +
		"        [Empty]\n"
	assert.Equal(testingHandle, expected, result.Text)
	assert.Empty(testingHandle, result.Files)
	assert.Equal(testingHandle, 0, result.Statistics.TotalFiles)
}

func TestSummarizeFullPatternDumpsContent(testingHandle *testing.T) {
	rootDirectory := makeScenarioRoot(testingHandle)
	configuration := types.PatternConfiguration{
		DefaultLevel: types.InclusionLevelTreeOnly,
		FullPatterns: []string{textFileName},
	}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{RootName: "demo"})
	require.NoError(testingHandle, summarizeError)

	expected := "demo/\n" +
		"    ├── a.txt\n" +
		"    └── b/\n" +
		"        [Empty]\n" +
		"\n" +
		"[File Content]\n" +
		"# a.txt\n" +
		"```\n" +
		textFileContent + "\n" +
		"```\n"
	assert.Equal(testingHandle, expected, result.Text)
	require.Len(testingHandle, result.Files, 1)
	assert.Equal(testingHandle, int64(len(textFileContent)), result.Files[0].SizeBytes)
	assert.Equal(testingHandle, 1, result.Statistics.TotalFiles)
	assert.Equal(testingHandle, "11b", result.Statistics.TotalSize)
}

func TestSummarizeIgnorePatternOmitsEntries(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFile(testingHandle, filepath.Join(rootDirectory, "logs", "debug.log"), "noise")
	writeFile(testingHandle, filepath.Join(rootDirectory, "logs", "keep.txt"), "keep")
	configuration := types.PatternConfiguration{
		DefaultLevel:   types.InclusionLevelTreeOnly,
		IgnorePatterns: []string{"**/*.log"},
	}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{})
	require.NoError(testingHandle, summarizeError)

	expected := "project/\n" +
		"    └── logs/\n" +
		"        └── keep.txt\n" +
		"        [...]\n"
	assert.Equal(testingHandle, expected, result.Text)
	assert.NotContains(testingHandle, result.Text, "debug.log")
}

func TestSummarizeFullyIgnoredDirectoryIsEmpty(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFile(testingHandle, filepath.Join(rootDirectory, "logs", "debug.log"), "noise")
	configuration := types.PatternConfiguration{
		DefaultLevel:   types.InclusionLevelTreeOnly,
		IgnorePatterns: []string{"logs/*.log"},
	}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{})
	require.NoError(testingHandle, summarizeError)

	expected := "project/\n" +
		"    └── logs/\n" +
		"        [Empty]\n"
	assert.Equal(testingHandle, expected, result.Text)
	assert.Equal(testingHandle, 1, result.Tree.Children[0].OmittedEntries)
}

func TestBuildDirectoryOnlyPattern(testingHandle *testing.T) {
	configuration := types.PatternConfiguration{
		DefaultLevel:   types.InclusionLevelTreeOnly,
		IgnorePatterns: []string{"build/"},
	}

	directoryRoot := testingHandle.TempDir()
	writeFile(testingHandle, filepath.Join(directoryRoot, "build", "out.bin"), "x")
	writeFile(testingHandle, filepath.Join(directoryRoot, "main.go"), "package main")
	treeBuilder := &commands.TreeBuilder{Configuration: configuration}
	directoryTree, buildError := treeBuilder.Build(directoryRoot)
	require.NoError(testingHandle, buildError)
	require.Len(testingHandle, directoryTree.Children, 1)
	assert.Equal(testingHandle, "main.go", directoryTree.Children[0].Name)
	assert.Equal(testingHandle, 1, directoryTree.OmittedEntries)

	fileRoot := testingHandle.TempDir()
	writeFile(testingHandle, filepath.Join(fileRoot, "build"), "#!/bin/sh")
	fileTree, buildError := treeBuilder.Build(fileRoot)
	require.NoError(testingHandle, buildError)
	require.Len(testingHandle, fileTree.Children, 1)
	assert.Equal(testingHandle, "build", fileTree.Children[0].Name)
	assert.False(testingHandle, fileTree.Children[0].IsDirectory)
	assert.Equal(testingHandle, 0, fileTree.OmittedEntries)
}

func TestSummarizeSkipsNonTextFullFile(testingHandle *testing.T) {
	rootDirectory := makeScenarioRoot(testingHandle)
	writeFile(testingHandle, filepath.Join(rootDirectory, "blob.bin"), "\x00\xff\x00")
	core, recorded := observer.New(zapcore.WarnLevel)
	configuration := types.PatternConfiguration{DefaultLevel: types.InclusionLevelFull}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{Logger: zap.New(core)})
	require.NoError(testingHandle, summarizeError)

	assert.Contains(testingHandle, result.Text, "└── blob.bin\n")
	require.Len(testingHandle, result.Files, 1)
	assert.Equal(testingHandle, textFileName, result.Files[0].RelativePath)
	assert.Equal(testingHandle, 1, recorded.Len())
}

func TestSummarizeSkipsUnreadableFullFile(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}
	rootDirectory := makeScenarioRoot(testingHandle)
	lockedPath := filepath.Join(rootDirectory, "locked.txt")
	writeFile(testingHandle, lockedPath, "secret")
	require.NoError(testingHandle, os.Chmod(lockedPath, 0o000))
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedPath, 0o644) })
	configuration := types.PatternConfiguration{DefaultLevel: types.InclusionLevelFull}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{})
	require.NoError(testingHandle, summarizeError)

	assert.Contains(testingHandle, result.Text, "locked.txt\n")
	assert.NotContains(testingHandle, result.Text, "secret")
	require.Len(testingHandle, result.Files, 1)
}

func TestBuildPermissionDeniedDirectory(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}
	rootDirectory := testingHandle.TempDir()
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	writeFile(testingHandle, filepath.Join(lockedDirectory, "inner.txt"), "x")
	require.NoError(testingHandle, os.Chmod(lockedDirectory, 0o000))
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })
	core, recorded := observer.New(zapcore.WarnLevel)

	treeBuilder := &commands.TreeBuilder{
		Configuration: types.PatternConfiguration{DefaultLevel: types.InclusionLevelTreeOnly},
		Logger:        zap.New(core),
	}
	rootNode, buildError := treeBuilder.Build(rootDirectory)
	require.NoError(testingHandle, buildError)
	require.Len(testingHandle, rootNode.Children, 1)
	assert.True(testingHandle, rootNode.Children[0].Unreadable)
	assert.Empty(testingHandle, rootNode.Children[0].Children)
	assert.Equal(testingHandle, 1, recorded.Len())
}

func TestBuildRejectsInvalidRoots(testingHandle *testing.T) {
	treeBuilder := &commands.TreeBuilder{}

	_, missingError := treeBuilder.Build(filepath.Join(testingHandle.TempDir(), "missing"))
	assert.Error(testingHandle, missingError)

	filePath := filepath.Join(testingHandle.TempDir(), "file.txt")
	writeFile(testingHandle, filePath, "x")
	_, fileError := treeBuilder.Build(filePath)
	assert.Error(testingHandle, fileError)
}

func TestBuildSortsAndRecordsRelativePaths(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFile(testingHandle, filepath.Join(rootDirectory, "zeta.txt"), "z")
	writeFile(testingHandle, filepath.Join(rootDirectory, "alpha", "beta.go"), "b")
	configuration := types.PatternConfiguration{
		DefaultLevel: types.InclusionLevelTreeOnly,
		FullPatterns: []string{"alpha/*.go"},
	}

	rootNode, buildError := (&commands.TreeBuilder{Configuration: configuration}).Build(rootDirectory)
	require.NoError(testingHandle, buildError)

	require.Len(testingHandle, rootNode.Children, 2)
	assert.Equal(testingHandle, "alpha", rootNode.Children[0].Name)
	assert.Equal(testingHandle, "zeta.txt", rootNode.Children[1].Name)
	nestedNode := rootNode.Children[0].Children[0]
	assert.Equal(testingHandle, "alpha/beta.go", nestedNode.RelativePath)
	assert.Equal(testingHandle, types.InclusionLevelFull, nestedNode.InclusionLevel)
}

func TestSummarizeIsDeterministic(testingHandle *testing.T) {
	rootDirectory := makeScenarioRoot(testingHandle)
	writeFile(testingHandle, filepath.Join(rootDirectory, "src", "main.go"), "package main\n")
	configuration := types.PatternConfiguration{
		DefaultLevel: types.InclusionLevelTreeOnly,
		FullPatterns: []string{"src/*.go"},
	}

	first, firstError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{})
	require.NoError(testingHandle, firstError)
	second, secondError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{})
	require.NoError(testingHandle, secondError)
	assert.Equal(testingHandle, first.Text, second.Text)
}

func TestSummarizeCountsTokens(testingHandle *testing.T) {
	rootDirectory := makeScenarioRoot(testingHandle)
	configuration := types.PatternConfiguration{DefaultLevel: types.InclusionLevelTreeOnly}

	result, summarizeError := commands.Summarize(rootDirectory, configuration, commands.SummarizeOptions{
		TokenCounter: stubCounter{},
		TokenModel:   "stub-model",
	})
	require.NoError(testingHandle, summarizeError)
	assert.Equal(testingHandle, len(result.Text), result.Statistics.TotalTokens)
	assert.Equal(testingHandle, "stub-model", result.Statistics.Model)
}
