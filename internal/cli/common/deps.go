package common

import (
	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/internal/app/kinds"
	"github.com/crmarques/datashelf/repository"
)

type CommandDependencies struct {
	Kinds          *kinds.Service
	RepositorySync repository.RepositorySync
	History        repository.RepositoryHistoryReader
	Config         *config.Config
}

func RequireKinds(deps CommandDependencies) (*kinds.Service, error) {
	if deps.Kinds == nil {
		return nil, ValidationError("resource service is not configured", nil)
	}
	return deps.Kinds, nil
}

func RequireRepositorySync(deps CommandDependencies) (repository.RepositorySync, error) {
	if deps.RepositorySync == nil {
		return nil, ValidationError("repository sync is not configured", nil)
	}
	return deps.RepositorySync, nil
}

func RequireRepositoryHistoryReader(deps CommandDependencies) (repository.RepositoryHistoryReader, error) {
	if deps.History == nil {
		return nil, ValidationError("repository history is only available for git repositories", nil)
	}
	return deps.History, nil
}

func RequireConfig(deps CommandDependencies) (config.Config, error) {
	if deps.Config == nil {
		return config.Config{}, ValidationError("configuration is not loaded", nil)
	}
	return *deps.Config, nil
}
