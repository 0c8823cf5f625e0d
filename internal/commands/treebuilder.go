package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/prompter/internal/types"
)

// TreeBuilder builds directory tree nodes using configured options.
type TreeBuilder struct {
	Configuration types.PatternConfiguration
	RootName      string
	Logger        *zap.Logger
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}

func (treeBuilder *TreeBuilder) rootName() string {
	if treeBuilder.RootName == "" {
		return types.DefaultRootName
	}
	return treeBuilder.RootName
}

func (treeBuilder *TreeBuilder) defaultLevel() types.InclusionLevel {
	if treeBuilder.Configuration.DefaultLevel == types.InclusionLevelFull {
		return types.InclusionLevelFull
	}
	return types.InclusionLevelTreeOnly
}
