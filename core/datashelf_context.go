package core

import (
	"context"
	"os"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/faults"
	"github.com/crmarques/datashelf/internal/app/kinds"
	"github.com/crmarques/datashelf/internal/logging"
	configfile "github.com/crmarques/datashelf/internal/providers/config/file"
	"github.com/crmarques/datashelf/internal/providers/repository/fsstore"
	gitrepository "github.com/crmarques/datashelf/internal/providers/repository/git"
	"github.com/crmarques/datashelf/repository"
)

func NewConfigLoader() config.ConfigLoader {
	return configfile.NewFileConfigService()
}

func NewDatashelfContext(ctx context.Context, opts BootstrapConfig) (DatashelfContext, error) {
	cfg, err := NewConfigLoader().Load(ctx, config.Selection{
		Path:      opts.ConfigPath,
		Overrides: opts.Overrides,
	})
	if err != nil {
		return DatashelfContext{}, err
	}
	if opts.Debug {
		cfg.Log.Level = config.LogLevelDebug
	}

	logWriter := opts.LogWriter
	if logWriter == nil {
		logWriter = os.Stderr
	}
	logger, err := logging.New(logWriter, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return DatashelfContext{}, err
	}

	store, err := buildResourceStore(cfg)
	if err != nil {
		return DatashelfContext{}, err
	}
	logger.V(1).Info("resolved configuration", "dataDir", cfg.DataDir, "backend", cfg.Repository.Backend)

	datashelfContext := DatashelfContext{
		Config:        cfg,
		ResourceStore: store,
		Kinds:         kinds.NewService(store, logger),
		Logger:        logger,
	}
	if syncer, ok := store.(repository.RepositorySync); ok {
		datashelfContext.RepositorySync = syncer
	}
	if history, ok := store.(repository.RepositoryHistoryReader); ok {
		datashelfContext.History = history
	}
	return datashelfContext, nil
}

func buildResourceStore(cfg config.Config) (repository.ResourceStore, error) {
	switch cfg.Repository.Backend {
	case config.BackendFilesystem:
		return fsstore.NewLocalResourceRepository(cfg.DataDir), nil
	case config.BackendGit:
		return gitrepository.NewGitResourceRepository(cfg.DataDir, cfg.Repository.GitSettings()), nil
	default:
		return nil, faults.NewTypedError(faults.ValidationError, "repository backend is invalid", nil)
	}
}
