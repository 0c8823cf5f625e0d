// Package output renders directory trees and file contents as plain text.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/prompter/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"
	emptyMarker     = "[Empty]"
	omittedMarker   = "[...]"

	fileContentHeader = "[File Content]"
	fileHeaderFormat  = "# %s\n"
	codeFence         = "```"
)

// WriteTreeText renders the tree rooted at rootNode. The root is written as its name
// followed by a slash and is treated as a last sibling, so its children start with four spaces.
func WriteTreeText(writer io.Writer, rootNode *types.TreeNode) {
	if rootNode == nil {
		return
	}
	fmt.Fprintf(writer, "%s%s\n", rootNode.Name, directorySuffix)
	writeDirectoryBody(writer, rootNode, treeLastPadding)
}

// RenderTree returns the tree text of rootNode.
func RenderTree(rootNode *types.TreeNode) string {
	var builder strings.Builder
	WriteTreeText(&builder, rootNode)
	return builder.String()
}

func treeNodeLinePrefix(prefix string, isLast bool) (string, string) {
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

func renderTreeNode(writer io.Writer, node *types.TreeNode, prefix string, isLast bool) {
	linePrefix, childPrefix := treeNodeLinePrefix(prefix, isLast)
	if !node.IsDirectory {
		fmt.Fprintf(writer, "%s%s\n", linePrefix, node.Name)
		return
	}
	fmt.Fprintf(writer, "%s%s%s\n", linePrefix, node.Name, directorySuffix)
	writeDirectoryBody(writer, node, childPrefix)
}

// writeDirectoryBody writes an [Empty] marker for a directory without shown children.
// Otherwise it writes the children, followed by an omission marker when at least one entry was ignored.
func writeDirectoryBody(writer io.Writer, directoryNode *types.TreeNode, childPrefix string) {
	if len(directoryNode.Children) == 0 {
		fmt.Fprintf(writer, "%s%s\n", childPrefix, emptyMarker)
		return
	}
	for index, child := range directoryNode.Children {
		if child == nil {
			continue
		}
		renderTreeNode(writer, child, childPrefix, index == len(directoryNode.Children)-1)
	}
	if directoryNode.OmittedEntries > 0 {
		fmt.Fprintf(writer, "%s%s\n", childPrefix, omittedMarker)
	}
}

// WriteContentDump writes the file content section. Nothing is written for an empty slice.
func WriteContentDump(writer io.Writer, fileContents []types.FileContent) {
	if len(fileContents) == 0 {
		return
	}
	fmt.Fprintf(writer, "\n%s\n", fileContentHeader)
	for _, fileContent := range fileContents {
		fmt.Fprintf(writer, fileHeaderFormat, fileContent.RelativePath)
		fmt.Fprintf(writer, "%s\n%s\n%s\n", codeFence, fileContent.Content, codeFence)
	}
}

// RenderSummary returns the tree text followed by the content dump.
func RenderSummary(rootNode *types.TreeNode, fileContents []types.FileContent) string {
	var builder strings.Builder
	WriteTreeText(&builder, rootNode)
	WriteContentDump(&builder, fileContents)
	return builder.String()
}

// FormatSummaryLine formats an OutputSummary into the raw summary line.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	extra := ""
	if summary.TotalTokens > 0 {
		extra = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, summary.TotalSize, extra, modelSuffix)
}
